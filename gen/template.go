package gen

const header = "// Code generated by singletongen. DO NOT EDIT."

const fileTemplate = header + `
// source: {{ .Source }}
{{ if .Tags }}
//go:build {{ .Tags }}
{{ end }}
package {{ .Package }}

import singleton "{{ .Runtime }}"
{{ range .Decls }}{{ if eq .Kind.String "safe" }}
func {{ .Helper }}() *singleton.Cell[{{ .Type }}] {
	return singleton.Safe[{{ .Type }}]()
}

// {{ .Initialize }} stores instance as the process-wide {{ .Type }}.
// Only the first call has an effect.
func {{ .Initialize }}(instance {{ .Type }}) {
	{{ .Helper }}().Initialize(instance)
}

// {{ .Write }} blocks until it holds the {{ .Type }} singleton exclusively.
// The guard must be released.
func {{ .Write }}() *singleton.WriteGuard[{{ .Type }}] {
	return {{ .Helper }}().Write()
}

// {{ .Read }} blocks until it may share the {{ .Type }} singleton with other
// readers. The guard must be released.
func {{ .Read }}() *singleton.ReadGuard[{{ .Type }}] {
	return {{ .Helper }}().Read()
}
{{ else }}
var {{ .Helper }} singleton.Unguarded[{{ .Type }}]

// {{ .Initialize }} replaces the process-wide {{ .Type }}. It is not
// synchronized.
func {{ .Initialize }}(instance {{ .Type }}) {
	{{ .Helper }}.Initialize(instance)
}

// {{ .Global }} returns the process-wide {{ .Type }} for direct mutation. It
// is not synchronized and panics if {{ .Initialize }} was never called.
func {{ .Global }}() *{{ .Type }} {
	return {{ .Helper }}.Get()
}
{{ end }}{{ end }}`
