// Package images downloads a record's sprites and points its artwork at the
// local copies.
package images

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-data/src/outcome"
	"github.com/BielosX/wombat/poke-data/src/pokemon"
	"github.com/BielosX/wombat/poke-data/src/store"
)

const (
	DefaultPublicDir = "public"
	DefaultTimeout   = 10 * time.Second
)

var (
	ErrInvalidArtwork = errors.New("invalid artwork structure")
	ErrDownload       = errors.New("sprite download failed")
)

type Options struct {
	PublicDir     string
	SpriteBaseUrl string
	Timeout       time.Duration
	HTTPClient    *http.Client
}

type Downloader struct {
	store         *store.Store
	http          *resty.Client
	publicDir     string
	spriteBaseUrl string
	sugar         *zap.SugaredLogger
}

func NewDownloader(sugar *zap.SugaredLogger, s *store.Store, opts Options) *Downloader {
	var client *resty.Client
	if opts.HTTPClient != nil {
		client = resty.NewWithClient(opts.HTTPClient)
	} else {
		client = resty.New()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client.SetTimeout(timeout)
	publicDir := opts.PublicDir
	if publicDir == "" {
		publicDir = DefaultPublicDir
	}
	spriteBaseUrl := opts.SpriteBaseUrl
	if spriteBaseUrl == "" {
		spriteBaseUrl = pokemon.DefaultSpriteBaseUrl
	}
	if !strings.HasSuffix(spriteBaseUrl, "/") {
		spriteBaseUrl += "/"
	}
	return &Downloader{
		store:         s,
		http:          client,
		publicDir:     publicDir,
		spriteBaseUrl: spriteBaseUrl,
		sugar:         sugar,
	}
}

func (d *Downloader) filePath(webPath string) string {
	return filepath.Join(d.publicDir, filepath.FromSlash(webPath))
}

// slotSetter reads and writes artwork urls by slot name.
type slotSetter interface {
	Get(slot string) string
	Set(slot, url string)
}

// artwork is the raw artwork object of a stored record. Keys outside the
// known slots are kept untouched.
type artwork store.Document

func (a artwork) Get(slot string) string {
	var url string
	if _, err := store.Document(a).Decode(slot, &url); err != nil {
		return ""
	}
	return url
}

func (a artwork) Set(slot, url string) {
	_ = store.Document(a).Set(slot, url)
}

// Process localizes every artwork slot of record id, then makes sure the
// shiny official artwork is on disk. The record is rewritten only when a
// slot changed, and only its artwork slots are replaced.
func (d *Downloader) Process(ctx context.Context, id int) (outcome.Outcome, error) {
	doc, err := d.store.LoadDocument(id)
	if err != nil {
		return outcome.Failed, err
	}
	var art artwork
	found, err := doc.Decode("artwork", &art)
	if err != nil || !found || art == nil {
		return outcome.Failed, fmt.Errorf("%s: %w", d.store.RecordPath(id), ErrInvalidArtwork)
	}

	result := outcome.Satisfied
	var failed []string
	for _, slot := range pokemon.Slots {
		o := d.updateSlot(ctx, id, slot, art)
		if o == outcome.Failed {
			failed = append(failed, slot)
		}
		result = outcome.Merge(result, o)
	}

	d.ensureShiny(ctx, id, art.Get("official"))

	switch result {
	case outcome.Applied:
		if err := doc.Set("artwork", art); err != nil {
			return outcome.Failed, err
		}
		if err := d.store.SaveDocument(id, doc); err != nil {
			return outcome.Failed, err
		}
		d.sugar.Infof("Updated %s with local paths", d.store.RecordPath(id))
		return outcome.Applied, nil
	case outcome.Failed:
		return outcome.Failed, fmt.Errorf("pokemon #%d slots %v: %w", id, failed, ErrDownload)
	default:
		return outcome.Satisfied, nil
	}
}

func (d *Downloader) updateSlot(ctx context.Context, id int, slot string, slots slotSetter) outcome.Outcome {
	current := slots.Get(slot)
	if current == "" {
		return outcome.Satisfied
	}
	webPath := WebPath(id, slot)
	filePath := d.filePath(webPath)

	if isLocal(current) {
		if current == webPath {
			d.sugar.Debugf("%s already using correct local path: %s", slot, current)
			return outcome.Satisfied
		}
		if fileExists(filePath) {
			d.sugar.Infof("%s updating to standard path: %s", slot, webPath)
			slots.Set(slot, webPath)
			return outcome.Applied
		}
		d.sugar.Infof("%s using non-standard local path: %s", slot, current)
		return outcome.Satisfied
	}

	if fileExists(filePath) {
		d.sugar.Infof("%s already exists locally: %s", slot, filePath)
		slots.Set(slot, webPath)
		return outcome.Applied
	}
	if err := d.download(ctx, current, filePath); err != nil {
		d.sugar.Warnf("Failed to download %s from %s: %s", slot, current, err)
		return outcome.Failed
	}
	slots.Set(slot, webPath)
	d.sugar.Infof("Updated %s to local path: %s", slot, webPath)
	return outcome.Applied
}

// ensureShiny fetches the shiny official artwork, deriving its url from the
// official slot while that is still remote and from the sprite host
// otherwise. Failures are only logged.
func (d *Downloader) ensureShiny(ctx context.Context, id int, official string) {
	if official == "" {
		return
	}
	filePath := d.filePath(ShinyWebPath(id))
	if fileExists(filePath) {
		d.sugar.Debugf("Shiny version already exists: %s", filePath)
		return
	}
	url := fmt.Sprintf("%sother/official-artwork/shiny/%d.png", d.spriteBaseUrl, id)
	if !isLocal(official) {
		derived, ok := ShinyUrl(official)
		if !ok {
			d.sugar.Infof("No shiny artwork url derivable from %s", official)
			return
		}
		url = derived
	}
	d.sugar.Infof("Attempting to download shiny version")
	if err := d.download(ctx, url, filePath); err != nil {
		d.sugar.Warnf("Failed to download shiny version from %s: %s", url, err)
	}
}

func (d *Downloader) download(ctx context.Context, url, path string) error {
	resp, err := d.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode())
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, resp.Body(), 0o644); err != nil {
		return err
	}
	d.sugar.Infof("Downloaded: %s", path)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
