package txml

import "slices"

// Options controls directive recognition and the module emitted by the
// generator. The zero value is usable; empty fields take their defaults.
type Options struct {
	// Prefixes are the directive namespaces treated as control directives,
	// for example "tiki" in tiki:if.
	Prefixes []string

	// Library is the component library native tags are imported from.
	Library string

	// RuntimeLibrary is the package path runtime helpers are imported from.
	// Each helper is imported as <RuntimeLibrary>/<helper>.
	RuntimeLibrary string

	// NativeTags are host tags. Every other tag is a custom component and
	// receives component forwarding props.
	NativeTags []string

	// CustomComponents maps a tag to the path its class is resolved from with
	// getComponentClass instead of a Library import.
	CustomComponents map[string]string
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() *Options {
	return &Options{
		Prefixes:         []string{"tiki"},
		Library:          "@tiki/tf-miniapp",
		RuntimeLibrary:   "@hoangviet/rml-runtime",
		NativeTags:       []string{"view", "button"},
		CustomComponents: map[string]string{},
	}
}

// withDefaults returns a copy of o with empty fields filled from
// DefaultOptions. A nil o yields the defaults.
func (o *Options) withDefaults() *Options {
	def := DefaultOptions()
	if o == nil {
		return def
	}
	out := *o
	if len(out.Prefixes) == 0 {
		out.Prefixes = def.Prefixes
	}
	if out.Library == "" {
		out.Library = def.Library
	}
	if out.RuntimeLibrary == "" {
		out.RuntimeLibrary = def.RuntimeLibrary
	}
	if len(out.NativeTags) == 0 {
		out.NativeTags = def.NativeTags
	}
	if out.CustomComponents == nil {
		out.CustomComponents = def.CustomComponents
	}
	return &out
}

func (o *Options) isDirectivePrefix(prefix string) bool {
	return slices.Contains(o.Prefixes, prefix)
}

func (o *Options) isNativeTag(tag string) bool {
	return slices.Contains(o.NativeTags, tag)
}
