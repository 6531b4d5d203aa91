package frame

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFrame(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Frame Suite")
}

var _ = Describe("Parse", func() {
	When("given a well-formed CONNECT frame", func() {
		It("accepts CONNECT as a synonym for STOMP and decodes headers raw", func() {
			raw := []byte("CONNECT\naccept-version:42\nhost:host.com\n\nFrame body\x00")

			f, err := Parse(raw)

			Expect(err).ToNot(HaveOccurred())
			Expect(f.Command).To(Equal(STOMP))
			Expect(f.Headers[HeaderAcceptVersion]).To(Equal("42"))
			Expect(f.Headers[HeaderHost]).To(Equal("host.com"))
			Expect(string(f.Body)).To(Equal("Frame body"))
		})
	})

	When("content-length disagrees with the body", func() {
		It("returns a ValidationError", func() {
			raw := []byte("CONNECT\naccept-version:42\nhost:host.com\ncontent-length:9\n\nFrame body\x00")

			_, err := Parse(raw)

			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&ValidationError{}))
		})
	})

	When("the command token is unrecognized", func() {
		It("returns a ParseError", func() {
			raw := []byte("CONNECTX\naccept-version:42\nhost:host.com\n\n\x00")

			_, err := Parse(raw)

			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&ParseError{}))
		})
	})

	When("a header name is not in the closed set", func() {
		It("returns a ParseError", func() {
			raw := []byte("DISCONNECT\nx-custom:oops\n\n\x00")

			_, err := Parse(raw)

			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&ParseError{}))
		})
	})

	When("a header value has an invalid escape sequence", func() {
		It("returns a ParseError", func() {
			raw := []byte("MESSAGE\ndestination:\\q\nmessage-id:m1\nsubscription:s1\n\n\x00")

			_, err := Parse(raw)

			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&ParseError{}))
		})
	})

	When("a duplicate header appears", func() {
		It("keeps only the first occurrence", func() {
			raw := []byte("DISCONNECT\nreceipt:first\nreceipt:second\n\n\x00")

			f, err := Parse(raw)

			Expect(err).ToNot(HaveOccurred())
			Expect(f.Headers[HeaderReceipt]).To(Equal("first"))
		})
	})

	When("the terminating NUL is missing", func() {
		It("returns a ParseError", func() {
			raw := []byte("DISCONNECT\n\n")

			_, err := Parse(raw)

			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&ParseError{}))
		})
	})

	When("non-whitespace bytes trail the NUL", func() {
		It("returns a ParseError", func() {
			raw := []byte("DISCONNECT\n\n\x00garbage")

			_, err := Parse(raw)

			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&ParseError{}))
		})
	})

	When("trailing CRLF sequences follow the NUL", func() {
		It("ignores them", func() {
			raw := []byte("DISCONNECT\n\n\x00\r\n\r\n")

			_, err := Parse(raw)

			Expect(err).ToNot(HaveOccurred())
		})
	})

	When("a command outside the core set is syntactically valid", func() {
		It("parses without error", func() {
			raw := []byte("ACK\nid:12\n\n\x00")

			f, err := Parse(raw)

			Expect(err).ToNot(HaveOccurred())
			Expect(f.Command).To(Equal(Command("ACK")))
		})
	})

	When("a required header is missing", func() {
		It("returns a ValidationError", func() {
			raw := []byte("SUBSCRIBE\ndestination:/queue\n\n\x00")

			_, err := Parse(raw)

			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&ValidationError{}))
		})
	})

	When("a command with no required headers carries a body", func() {
		It("parses without error", func() {
			raw := []byte("DISCONNECT\n\nFrame body\x00")

			f, err := Parse(raw)

			Expect(err).ToNot(HaveOccurred())
			Expect(string(f.Body)).To(Equal("Frame body"))
		})
	})
})

var _ = Describe("Serialize", func() {
	When("given a MESSAGE frame whose destination needs escaping", func() {
		It("escapes the colon and round-trips through Parse", func() {
			f := Frame{
				Command: MESSAGE,
				Headers: Headers{
					HeaderSubscription: "s1",
					HeaderMessageID:    "m1",
					HeaderDestination:  "/pa:th",
				},
				Body: []byte("Frame body"),
			}

			out, err := Serialize(f)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(out)).To(ContainSubstring("destination:/pa\\c:th\n"))

			parsed, err := Parse(out)
			Expect(err).ToNot(HaveOccurred())
			Expect(parsed.Equal(f)).To(BeTrue())
		})
	})

	When("the frame fails validation", func() {
		It("returns a ValidationError and no bytes", func() {
			f := Frame{Command: SUBSCRIBE, Headers: Headers{HeaderDestination: "/q"}}

			out, err := Serialize(f)

			Expect(out).To(BeNil())
			Expect(err).To(BeAssignableToTypeOf(&ValidationError{}))
		})
	})

	When("given the client connect frame", func() {
		It("always emits STOMP and leaves header values unescaped", func() {
			f := Frame{
				Command: CONNECT,
				Headers: Headers{
					HeaderAcceptVersion: "1.2",
					HeaderHost:          "ltnm.example.com",
					HeaderLogin:         "alice",
					HeaderPasscode:      "sw0rd:fish",
				},
			}

			out, err := Serialize(f)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(out)).To(HavePrefix("STOMP\n"))
			Expect(string(out)).To(ContainSubstring("passcode:sw0rd:fish\n"))
		})
	})
})

var _ = Describe("escape soundness", func() {
	It("round-trips escaping for every special character", func() {
		for _, s := range []string{"a\\b", "a\rb", "a\nb", "a:b", "a\\r\\n:\\b"} {
			encoded := escapeValue(s)
			decoded, err := unescapeValue(encoded)
			Expect(err).ToNot(HaveOccurred())
			Expect(decoded).To(Equal(s))
		}
	})
})

var _ = Describe("content-length agreement", func() {
	It("accepts a content-length equal to the body and rejects any other value", func() {
		body := []byte("hello")

		good := Frame{Command: SEND, Headers: Headers{HeaderDestination: "/q", HeaderContentLength: "5"}, Body: body}
		Expect(Validate(good)).ToNot(HaveOccurred())

		bad := Frame{Command: SEND, Headers: Headers{HeaderDestination: "/q", HeaderContentLength: "4"}, Body: body}
		Expect(Validate(bad)).To(HaveOccurred())
	})
})
