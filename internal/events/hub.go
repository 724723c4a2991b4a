package events

import (
	"context"
	"sync"
	"time"
)

// Cambio es la señal que reciben los paneles en vivo: qué colección cambió y
// por qué acción. Los paneles recargan la colección, el payload no viaja.
type Cambio struct {
	Tabla      string    `json:"tabla"`
	Accion     string    `json:"accion"`
	RegistroID string    `json:"registro_id"`
	At         time.Time `json:"at"`
}

// Hub reparte cambios a los suscriptores SSE del proceso. Sin kafka el hub
// actúa directamente de bus de eventos; con kafka lo alimenta el consumer.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]subscriber
}

type subscriber struct {
	tabla string // vacío = todas las colecciones
	ch    chan Cambio
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]subscriber)}
}

// Subscribe registra un oyente para una colección. El canal se descarta si el
// oyente no drena: un panel lento no frena al resto.
func (h *Hub) Subscribe(tabla string) (<-chan Cambio, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Cambio, 16)
	h.subs[id] = subscriber{tabla: tabla, ch: ch}

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if s, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(s.ch)
		}
	}
	return ch, cancel
}

func (h *Hub) Broadcast(c Cambio) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs {
		if s.tabla != "" && s.tabla != c.Tabla {
			continue
		}
		select {
		case s.ch <- c:
		default:
		}
	}
}

// PublishCambio hace que el hub sirva de bus local cuando kafka está apagado.
func (h *Hub) PublishCambio(ctx context.Context, tabla, accion, registroID string) error {
	h.Broadcast(Cambio{Tabla: tabla, Accion: accion, RegistroID: registroID, At: time.Now()})
	return nil
}
