package source

import (
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/ivlev/videoplan/internal/element"
	"github.com/ivlev/videoplan/internal/timeline"
)

// Source is a paged slide provider. Only identities and dimensions are
// exposed; pixel rendering stays with the external renderer.
type Source interface {
	PageCount() int
	PageID(index int) string
	GetPageDimensions(index int) (width, height float64, err error)
	Close() error
}

// FitzPDFSource reads page geometry from a PDF via go-fitz.
type FitzPDFSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) PageID(index int) string {
	return fmt.Sprintf("%s#page=%d", f.path, index+1)
}

func (f *FitzPDFSource) GetPageDimensions(index int) (float64, float64, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}

// BuildSlideScene expands a source into a scene of back-to-back image
// entities, perPage seconds each.
func BuildSlideScene(src Source, perPage float64) (*timeline.Scene, error) {
	if perPage <= 0 {
		return nil, &timeline.ConfigurationError{Subject: "slides", Reason: "per-page duration must be positive"}
	}

	scene := timeline.NewScene()
	start := 0.0
	for i := 0; i < src.PageCount(); i++ {
		w, h, err := src.GetPageDimensions(i)
		if err != nil {
			return nil, fmt.Errorf("page %d dimensions: %w", i, err)
		}
		slide := element.NewImage(src.PageID(i), w, h).
			StartAt(start).
			SetDuration(perPage)
		if err := scene.Add(slide); err != nil {
			return nil, err
		}
		start += perPage
	}
	return scene, nil
}
