// Package preview models the modal image viewer.
package preview

type State struct {
	Open   bool
	Images []string
	Index  int
	Href   string
}

// Action is implemented by every preview action.
type Action interface {
	Type() string
	previewAction()
}

type (
	// OpenImages shows images starting at Index. Empty entries are dropped
	// and Index is clamped into range.
	OpenImages struct {
		Images []string
		Index  int
		Href   string
	}
	OpenSingle struct{ Src, Href string }
	Close      struct{}
	Next       struct{}
	Prev       struct{}
)

func (OpenImages) Type() string { return "preview/open" }
func (OpenSingle) Type() string { return "preview/openSingle" }
func (Close) Type() string      { return "preview/close" }
func (Next) Type() string       { return "preview/next" }
func (Prev) Type() string       { return "preview/prev" }

func (OpenImages) previewAction() {}
func (OpenSingle) previewAction() {}
func (Close) previewAction()      {}
func (Next) previewAction()       {}
func (Prev) previewAction()       {}

func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case OpenImages:
		return open(a.Images, a.Index, a.Href)
	case OpenSingle:
		return open([]string{a.Src}, 0, a.Href)
	case Close:
		return State{}
	case Next:
		if n := len(s.Images); n > 0 {
			s.Index = (s.Index + 1) % n
		}
	case Prev:
		if n := len(s.Images); n > 0 {
			s.Index = (s.Index - 1 + n) % n
		}
	}
	return s
}

func open(images []string, index int, href string) State {
	kept := make([]string, 0, len(images))
	for _, img := range images {
		if img != "" {
			kept = append(kept, img)
		}
	}

	if last := len(kept) - 1; index > last {
		index = last
	}
	if index < 0 {
		index = 0
	}

	return State{
		Open:   len(kept) > 0,
		Images: kept,
		Index:  index,
		Href:   href,
	}
}

// CurrentImage is the image being shown, or "" when closed.
func CurrentImage(s State) string {
	if !s.Open || s.Index >= len(s.Images) {
		return ""
	}
	return s.Images[s.Index]
}
