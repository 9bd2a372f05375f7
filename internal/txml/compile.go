package txml

// Parse parses a .txml document into a normalized tree.
func Parse(filename, source string) (*Root, error) {
	l := NewLexer(filename, source)
	p := NewParser(l)
	root := p.ParseRoot()
	if err := p.Errors().Err(); err != nil {
		return nil, err
	}
	if err := l.Errors().Err(); err != nil {
		return nil, err
	}
	return root, nil
}

// Compile parses, transforms and generates a .txml document. No output is
// returned when any stage fails.
func Compile(filename, source string, opts *Options) (string, error) {
	root, err := Parse(filename, source)
	if err != nil {
		return "", err
	}
	if err := Transform(root, opts); err != nil {
		return "", err
	}
	g := NewGenerator(opts)
	g.SourceFile = filename
	out, err := g.Generate(root)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
