package funnel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	hookerrors "github.com/mrz1836/exithook/internal/errors"
)

// Load reads the funnel data saved at path and deletes the file.
//
// An empty path returns (nil, nil) without touching the filesystem.
// Read failures wrap ErrFunnelRead; content that is not a single JSON object
// (or null) wraps ErrFunnelParse and leaves the file in place. Once parsed,
// the file is removed on a best-effort basis: removal errors are ignored.
// A JSON null payload yields nil Data.
func Load(ctx context.Context, path string) (Data, error) {
	if path == "" {
		return nil, nil
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("Getting saved funnel data from file " + path)

	content, err := os.ReadFile(path) //nolint:gosec // path is supplied by the parent test runner
	if err != nil {
		return nil, fmt.Errorf("%w: %w", hookerrors.ErrFunnelRead, err)
	}

	data, err := parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", hookerrors.ErrFunnelParse, path, err)
	}

	remove(path)
	return data, nil
}

// errNotObject reports a top-level JSON value other than an object or null.
var errNotObject = errors.New("top-level JSON value is not an object")

// errTrailingData reports content after the first JSON value.
var errTrailingData = errors.New("unexpected data after top-level JSON value")

// parse decodes exactly one JSON value, keeping numbers as json.Number.
func parse(content []byte) (Data, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	switch typed := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return Data(typed), nil
	default:
		return nil, errNotObject
	}
}

// remove deletes path, ignoring every error including a missing file.
func remove(path string) {
	_ = os.Remove(path)
}
