package soap

import (
	"encoding/xml"
	"strings"
	"testing"
)

const testURN = "urn:schemas-upnp-org:service:WANIPConnection:1"

func TestNewRequestHeaders(t *testing.T) {
	req := NewRequest(testURN, "GetStatusInfo")

	if got := req.Headers["SoapAction"]; got != testURN+"#GetStatusInfo" {
		t.Errorf("Expected SoapAction header '%s#GetStatusInfo', got '%s'", testURN, got)
	}
	if got := req.Headers["Content-Type"]; got != "text/xml; charset=utf-8" {
		t.Errorf("Expected content type 'text/xml; charset=utf-8', got '%s'", got)
	}
}

func TestNewRequestBody(t *testing.T) {
	for _, action := range []string{"GetExternalIPAddress", "GetStatusInfo", "ForceTermination"} {
		req := NewRequest(testURN, action)

		if !strings.Contains(req.Body, `<u:`+action+` xmlns:u="`+testURN+`"/>`) {
			t.Errorf("Body for %s is missing the action element:\n%s", action, req.Body)
		}

		// The envelope must be well-formed XML.
		var envelope struct {
			XMLName xml.Name
			Body    struct {
				Inner []byte `xml:",innerxml"`
			} `xml:"Body"`
		}
		if err := xml.Unmarshal([]byte(req.Body), &envelope); err != nil {
			t.Fatalf("Body for %s is not well-formed XML: %v", action, err)
		}
		if envelope.XMLName.Local != "Envelope" {
			t.Errorf("Expected root element 'Envelope', got '%s'", envelope.XMLName.Local)
		}
		if len(envelope.Body.Inner) == 0 {
			t.Errorf("Body element for %s is empty", action)
		}
	}
}

func TestNewRequestDeterministic(t *testing.T) {
	a := NewRequest(testURN, "ForceTermination")
	b := NewRequest(testURN, "ForceTermination")
	if a.Body != b.Body {
		t.Error("Expected identical bodies for identical inputs")
	}
}
