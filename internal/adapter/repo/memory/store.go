package memory

import (
	"sync"

	"plantagotchi/internal/app/ports"
	"plantagotchi/internal/domain/plant"
)

type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	sessions map[string]*plant.Session
	events   map[string][]plant.DomainEvent
	ledger   map[string]ports.SessionRecord
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*plant.Session),
		events:   make(map[string][]plant.DomainEvent),
		ledger:   make(map[string]ports.SessionRecord),
	}
}
