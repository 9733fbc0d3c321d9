package render

// Renderer writes a command result in the selected Format
type Renderer[T any] interface {
	Render(result T) error
}

// Machine reports whether f is a structured format rather than terminal text
func (f Format) Machine() bool {
	return f == FormatJSON || f == FormatYAML
}
