package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gopkg.in/yaml.v3"

	"github.com/tinkerhaus/crema/internal/client"
)

var _ = Describe("Client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	newClient := func(handler http.HandlerFunc) *client.Client {
		server := httptest.NewServer(handler)
		DeferCleanup(server.Close)

		c, err := client.NewClient(server.URL)
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	Describe("NetworkIP", func() {
		It("returns the probed LAN address", func() {
			c := newClient(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodGet))
				Expect(r.URL.Path).To(Equal("/api/network-ip"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"ip": "192.168.1.42"}`))
			})

			ip, err := c.NetworkIP(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ip).To(Equal("192.168.1.42"))
		})

		It("returns an error on a failing probe", func() {
			c := newClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			})

			_, err := c.NetworkIP(ctx)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetSettings", func() {
		It("decodes the settings document", func() {
			c := newClient(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/settings"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"displayName": "Ada", "language": "en"}`))
			})

			settings, err := c.GetSettings(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(settings.DisplayName).To(Equal("Ada"))
		})
	})

	Describe("SendCommand", func() {
		type responseSpec struct {
			Status      int    `yaml:"status"`
			ContentType string `yaml:"contentType"`
			Body        string `yaml:"body"`
		}

		type expectedResult struct {
			Success bool   `yaml:"success"`
			Message string `yaml:"message"`
		}

		type testCase struct {
			Description string         `yaml:"description"`
			Path        string         `yaml:"path"`
			RequestBody string         `yaml:"requestBody"`
			Response    responseSpec   `yaml:"response"`
			Expected    expectedResult `yaml:"expected"`
		}

		DescribeTable(
			"translates controller responses into command results",
			func(tcPath string) {
				tc := MustLoadYaml[testCase](tcPath)

				var receivedBody []byte
				c := newClient(func(w http.ResponseWriter, r *http.Request) {
					Expect(r.Method).To(Equal(http.MethodPost))
					Expect(r.URL.Path).To(Equal("/api/machine/command" + tc.Path))

					var err error
					receivedBody, err = io.ReadAll(r.Body)
					Expect(err).NotTo(HaveOccurred())

					if tc.Response.ContentType != "" {
						w.Header().Set("Content-Type", tc.Response.ContentType)
					}
					w.WriteHeader(tc.Response.Status)
					w.Write([]byte(tc.Response.Body))
				})

				var body interface{}
				if tc.RequestBody != "" {
					body = json.RawMessage(tc.RequestBody)
				}

				result, err := c.SendCommand(ctx, tc.Path, body)
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Success).To(Equal(tc.Expected.Success))
				Expect(result.Message).To(Equal(tc.Expected.Message))

				if tc.RequestBody != "" {
					Expect(receivedBody).To(MatchJSON(tc.RequestBody))
				} else {
					Expect(receivedBody).To(BeEmpty())
				}
			},
			Entry("successful command with message",
				filepath.Join("testdata", "send_command", "success_with_message.yaml")),
			Entry("successful command with empty response body",
				filepath.Join("testdata", "send_command", "success_empty_body.yaml")),
			Entry("failure carries the backend detail message",
				filepath.Join("testdata", "send_command", "failure_detail_message.yaml")),
			Entry("failure falls back to the error field",
				filepath.Join("testdata", "send_command", "failure_error_field.yaml")),
			Entry("failure without a parseable body uses the status text",
				filepath.Join("testdata", "send_command", "failure_status_text.yaml")),
		)

		It("prefixes command paths missing a leading slash", func() {
			c := newClient(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/api/machine/command/flush"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"success": true}`))
			})

			result, err := c.SendCommand(ctx, "flush", nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeTrue())
		})
	})

	Describe("NewClient", func() {
		It("rejects an empty base url", func() {
			_, err := client.NewClient("   ")
			Expect(err).To(HaveOccurred())
		})

		It("accepts a bare host:port", func() {
			_, err := client.NewClient("192.168.1.10:8080")
			Expect(err).NotTo(HaveOccurred())
		})
	})
})

func MustLoadYaml[T any](path string) T {
	data, err := os.ReadFile(path)
	Expect(err).NotTo(HaveOccurred(), "failed to read yaml file %s", path)

	var out T
	Expect(yaml.Unmarshal(data, &out)).To(Succeed(), "failed to unmarshal yaml file %s", path)

	return out
}
