package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("Load", func() {
	envVars := []string{EnvServerURL, EnvServerPort, EnvUsername, EnvPassword, EnvCABundlePath}

	BeforeEach(func() {
		for _, v := range envVars {
			os.Unsetenv(v)
		}
	})

	When("only environment variables are set", func() {
		It("populates the config from them", func() {
			os.Setenv(EnvServerURL, "ltnm.example.com")
			os.Setenv(EnvServerPort, "443")
			os.Setenv(EnvUsername, "student")
			os.Setenv(EnvPassword, "secret")

			cfg, err := Load("")
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.ServerURL).To(Equal("ltnm.example.com"))
			Expect(cfg.ServerPort).To(Equal("443"))
			Expect(cfg.Username).To(Equal("student"))
			Expect(cfg.Password).To(Equal("secret"))
		})
	})

	When("a required value is missing everywhere", func() {
		It("returns a ValidationError", func() {
			_, err := Load("")
			Expect(err).To(HaveOccurred())
			var verr *ValidationError
			Expect(err).To(BeAssignableToTypeOf(verr))
		})
	})

	When("an override file supplies a default and the environment overrides it", func() {
		It("prefers the environment variable's value", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "override.yaml")
			contents := "server-url: file-value.example.com\nserver-port: \"61614\"\nusername: file-user\npassword: file-pass\n"
			Expect(os.WriteFile(path, []byte(contents), 0o600)).To(Succeed())

			os.Setenv(EnvServerURL, "env-value.example.com")

			cfg, err := Load(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.ServerURL).To(Equal("env-value.example.com"))
			Expect(cfg.ServerPort).To(Equal("61614"))
			Expect(cfg.Username).To(Equal("file-user"))
		})
	})

	When("the override file names an unknown key", func() {
		It("returns a KeyError", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "override.yaml")
			Expect(os.WriteFile(path, []byte("not-a-real-key: whoopie\n"), 0o600)).To(Succeed())

			_, err := Load(path)
			Expect(err).To(HaveOccurred())
			var kerr *KeyError
			Expect(err).To(BeAssignableToTypeOf(kerr))
		})
	})

	When("the override file does not exist", func() {
		It("falls back to defaults and the environment without error", func() {
			os.Setenv(EnvServerURL, "ltnm.example.com")
			os.Setenv(EnvServerPort, "443")
			os.Setenv(EnvUsername, "student")
			os.Setenv(EnvPassword, "secret")

			cfg, err := Load(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.ServerURL).To(Equal("ltnm.example.com"))
		})
	})
})
