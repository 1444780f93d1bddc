package client

import (
	"context"
	"strings"
	gosync "sync"

	"golang.org/x/exp/slog"

	"qrkeeper/internal/domain/qrcode"
)

type EditorState int

const (
	EditorClosed EditorState = iota
	EditorOpen
)

func (s EditorState) String() string {
	if s == EditorOpen {
		return "open"
	}
	return "closed"
}

// EditorAPI - часть API, которой пользуется редактор.
type EditorAPI interface {
	ListQRCodes(ctx context.Context) ([]qrcode.ListItem, error)
	UpdateDestination(ctx context.Context, id, destination string) (qrcode.ListItem, error)
}

// Editor держит снимок списка и не больше одной открытой записи.
// Closed -> Open(record, draft) -> Closed.
type Editor struct {
	api   EditorAPI
	cache RecordCache
	log   *slog.Logger

	mu      gosync.Mutex
	records []qrcode.ListItem
	state   EditorState
	current qrcode.ListItem
	draft   string
}

func NewEditor(api EditorAPI, cache RecordCache, log *slog.Logger) *Editor {
	if cache == nil {
		cache = NewMemoryStorage()
	}
	return &Editor{
		api:   api,
		cache: cache,
		log:   log.With("component", "editor"),
	}
}

// Load запрашивает свежий список и кладет его в локальный кэш.
func (e *Editor) Load(ctx context.Context) ([]qrcode.ListItem, error) {
	items, err := e.api.ListQRCodes(ctx)
	if err != nil {
		return nil, err
	}

	if err := e.cache.ReplaceAll(items); err != nil {
		e.log.Warn("Не удалось обновить локальный кэш", "error", err)
	}

	e.mu.Lock()
	e.records = items
	e.mu.Unlock()

	return e.Records(), nil
}

// LoadCached поднимает последний сохраненный список без сети.
func (e *Editor) LoadCached() ([]qrcode.ListItem, error) {
	items, err := e.cache.List()
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.records = items
	e.mu.Unlock()

	return e.Records(), nil
}

func (e *Editor) Records() []qrcode.ListItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]qrcode.ListItem(nil), e.records...)
}

func (e *Editor) Open(id string) (qrcode.ListItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, r := range e.records {
		if r.ID == id {
			e.state = EditorOpen
			e.current = r
			e.draft = r.Destination()
			return r, nil
		}
	}
	return qrcode.ListItem{}, &qrcode.Error{Op: "editor open", Kind: qrcode.ErrNotFound}
}

func (e *Editor) SetDraft(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == EditorOpen {
		e.draft = v
	}
}

func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.close()
}

// State возвращает состояние, открытую запись и черновик.
func (e *Editor) State() (EditorState, qrcode.ListItem, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.current, e.draft
}

// Update сохраняет новый адрес открытой записи. При ошибке редактор остается открытым.
func (e *Editor) Update(ctx context.Context, id, newDestination string) (qrcode.ListItem, error) {
	const op = "editor update"

	if strings.TrimSpace(newDestination) == "" {
		return qrcode.ListItem{}, &qrcode.Error{Op: op, Kind: qrcode.ErrEmptyInput}
	}

	e.mu.Lock()
	if e.state != EditorOpen || e.current.ID != id {
		e.mu.Unlock()
		return qrcode.ListItem{}, &qrcode.Error{Op: op, Kind: qrcode.ErrNotFound}
	}
	e.mu.Unlock()

	item, err := e.api.UpdateDestination(ctx, id, newDestination)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.draft = newDestination
		return qrcode.ListItem{}, err
	}

	for i := range e.records {
		if e.records[i].ID == item.ID {
			e.records[i] = item
		}
	}
	if err := e.cache.Upsert(item); err != nil {
		e.log.Warn("Не удалось обновить запись в кэше", "id", item.ID, "error", err)
	}
	e.close()

	return item, nil
}

func (e *Editor) close() {
	e.state = EditorClosed
	e.current = qrcode.ListItem{}
	e.draft = ""
}
