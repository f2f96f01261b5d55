package tool

// Registration is one RegisterTool call.
type Registration struct {
	Name    string
	Options ToolOptions
}

// Recorder is an Environment that remembers every registration in order.
// It is not safe for concurrent use.
type Recorder struct {
	Registrations []Registration
}

// RegisterTool records the registration.
func (r *Recorder) RegisterTool(name string, opts ToolOptions) {
	r.Registrations = append(r.Registrations, Registration{Name: name, Options: opts})
}

// Names returns the registered tool names in order.
func (r *Recorder) Names() []string {
	names := make([]string, 0, len(r.Registrations))
	for _, reg := range r.Registrations {
		names = append(names, reg.Name)
	}
	return names
}
