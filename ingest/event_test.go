package ingest

import (
	"fmt"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIngest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ingest Suite")
}

type recordingSink struct {
	events []PassengerEvent
	fail   bool
}

func (s *recordingSink) RecordPassengerEvent(e PassengerEvent) error {
	if s.fail {
		return fmt.Errorf("sink rejected event")
	}
	s.events = append(s.events, e)
	return nil
}

var _ = Describe("DecodeMessage", func() {
	var sink *recordingSink

	BeforeEach(func() {
		sink = &recordingSink{}
	})

	It("decodes a well-formed tap-in event", func() {
		err := DecodeMessage([]byte(`{"station_id":"station_1","event_type":"in"}`), sink)
		Expect(err).ToNot(HaveOccurred())
		Expect(sink.events).To(Equal([]PassengerEvent{{StationID: "station_1", Type: In}}))
	})

	It("decodes a well-formed tap-out event", func() {
		err := DecodeMessage([]byte(`{"station_id":"station_2","event_type":"out"}`), sink)
		Expect(err).ToNot(HaveOccurred())
		Expect(sink.events).To(Equal([]PassengerEvent{{StationID: "station_2", Type: Out}}))
	})

	It("rejects malformed JSON without calling the sink", func() {
		err := DecodeMessage([]byte(`not json`), sink)
		Expect(err).To(HaveOccurred())
		Expect(sink.events).To(BeEmpty())
	})

	It("rejects a missing station_id", func() {
		err := DecodeMessage([]byte(`{"event_type":"in"}`), sink)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unrecognized event_type", func() {
		err := DecodeMessage([]byte(`{"station_id":"station_1","event_type":"sideways"}`), sink)
		Expect(err).To(HaveOccurred())
	})

	It("propagates the sink's error", func() {
		sink.fail = true
		err := DecodeMessage([]byte(`{"station_id":"station_1","event_type":"in"}`), sink)
		Expect(err).To(HaveOccurred())
	})
})
