package handler

// DI for all handlers and models alike.

import (
	"sync"

	"github.com/yumyai/phamfasta/pkg/extract"
)

type DBContext struct {
	Repo   extract.Repository
	Export extract.Options

	// Exports write into a shared archive root; run them one at a time.
	exportMu sync.Mutex
}
