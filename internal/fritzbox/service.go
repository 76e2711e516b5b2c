package fritzbox

// ServiceDescriptor identifies the UPnP service and the control actions used
// by this client. Immutable after construction; the values are fixed by the
// service definition, never user input.
type ServiceDescriptor struct {
	ServiceURN  string
	ControlPath string

	ActionGetExternalIPAddress string
	ActionForceTermination     string
	ActionGetStatusInfo        string
}

// WANIPConnection1 describes the WANIPConnection:1 service as exposed by
// FRITZ!Box routers.
func WANIPConnection1() ServiceDescriptor {
	return ServiceDescriptor{
		ServiceURN:  "urn:schemas-upnp-org:service:WANIPConnection:1",
		ControlPath: "/igdupnp/control/WANIPConn1",

		ActionGetExternalIPAddress: "GetExternalIPAddress",
		ActionForceTermination:     "ForceTermination",
		ActionGetStatusInfo:        "GetStatusInfo",
	}
}
