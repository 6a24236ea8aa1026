package mock

import (
	"context"

	"github.com/jmbacasno/mangago"
)

var _ mangago.ListWriter = (*ListWriter)(nil)

// ListWriter is a mock implementation of mangago.ListWriter.
type ListWriter struct {
	WriteListFn func(ctx context.Context, list *mangago.MangaList) (string, error)
}

func (w *ListWriter) WriteList(ctx context.Context, list *mangago.MangaList) (string, error) {
	return w.WriteListFn(ctx, list)
}
