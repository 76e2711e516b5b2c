// Package soap builds SOAP 1.1 requests for UPnP control actions.
package soap

import "fmt"

const contentType = "text/xml; charset=utf-8"

// Request holds the HTTP headers and body for a single SOAP action call.
type Request struct {
	Headers map[string]string
	Body    string
}

// NewRequest builds the headers and envelope body for a parameterless action
// against the given service URN. Deterministic, no failure modes; the inputs
// are fixed service identifiers, not user data, so nothing is escaped.
func NewRequest(serviceURN, action string) Request {
	body := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<s:Envelope s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/" xmlns:s="http://schemas.xmlsoap.org/soap/envelope/">
  <s:Body>
    <u:%s xmlns:u="%s"/>
  </s:Body>
</s:Envelope>`, action, serviceURN)

	return Request{
		Headers: map[string]string{
			"SoapAction":   fmt.Sprintf("%s#%s", serviceURN, action),
			"Content-Type": contentType,
		},
		Body: body,
	}
}
