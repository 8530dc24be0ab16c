// Package cardart maps card faces to image files listed in a manifest.
package cardart

import (
	"context"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/khempel0430/solitaire/internal/domain"
	"github.com/khempel0430/solitaire/internal/ports"
)

//go:embed data/cards.csv
var manifestFS embed.FS

const manifestName = "data/cards.csv"

// Catalog resolves faces against a manifest of image names. The manifest is
// read once, on first use; every caller waits for that single load.
type Catalog struct {
	fsys     fs.FS
	manifest string
	basePath string

	once   sync.Once
	images map[string]ports.Image
	err    error
}

// NewCatalog uses the embedded manifest. Image sources are basePath/<name>.png.
func NewCatalog(basePath string) *Catalog {
	return NewCatalogFS(manifestFS, manifestName, basePath)
}

// NewCatalogFS reads the manifest at name in fsys.
func NewCatalogFS(fsys fs.FS, name, basePath string) *Catalog {
	return &Catalog{fsys: fsys, manifest: name, basePath: basePath}
}

func (c *Catalog) load() {
	f, err := c.fsys.Open(c.manifest)
	if err != nil {
		c.err = fmt.Errorf("open card manifest: %w", err)
		return
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	c.images = make(map[string]ports.Image)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.err = fmt.Errorf("parse card manifest: %w", err)
			return
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		c.images[name] = ports.Image{Name: name, Src: path.Join(c.basePath, name+".png")}
	}
}

// Resolve returns the image for face, or domain.ErrArtNotFound.
func (c *Catalog) Resolve(_ context.Context, face domain.Face) (ports.Image, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return ports.Image{}, c.err
	}
	name := FileName(face)
	img, ok := c.images[name]
	if !ok {
		return ports.Image{}, fmt.Errorf("%w: %s", domain.ErrArtNotFound, name)
	}
	return img, nil
}

// Len returns the number of manifest entries.
func (c *Catalog) Len() (int, error) {
	c.once.Do(c.load)
	return len(c.images), c.err
}

// FileName is the manifest name for face: card_<suit>_<rank>, card_back or card_empty.
// Ranks two to nine are zero padded.
func FileName(face domain.Face) string {
	switch face.Kind() {
	case domain.FaceBack:
		return "card_back"
	case domain.FaceEmpty:
		return "card_empty"
	}
	card, _ := face.Card()
	rank := card.Rank.String()
	if len(rank) == 1 && rank[0] >= '2' && rank[0] <= '9' {
		rank = "0" + rank
	}
	return "card_" + card.Suit.String() + "_" + rank
}
