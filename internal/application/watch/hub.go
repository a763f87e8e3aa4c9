// Package watch implementa las suscripciones a cambios: tras cada mutación de
// una colección, los suscriptores del owner reciben una señal y vuelven a
// consultar el snapshot completo (sin diffing incremental). La señal no lleva
// payload; el handler SSE re-consulta el listado ordenado y lo empuja entero.
package watch

import "sync"

// Colecciones observables.
const (
	CollectionCustomers = "customers"
	CollectionReminders = "reminders"
)

type subscriber struct {
	owner      string
	collection string
	ch         chan struct{}
}

// Hub registro en memoria de suscriptores por (owner, colección).
// Suficiente mientras el proceso sea único (sin escalado horizontal).
type Hub struct {
	mu   sync.Mutex
	subs map[int]*subscriber
	next int
}

// NewHub construye el hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]*subscriber)}
}

// Subscribe registra un suscriptor y devuelve su canal de señal junto con la
// función de baja. El canal tiene buffer 1 y las señales se coalescen: si el
// suscriptor va lento, ráfagas de mutaciones colapsan en una sola señal (el
// snapshot se re-consulta igual, así que no se pierde estado).
func (h *Hub) Subscribe(ownerID, collection string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	sub := &subscriber{owner: ownerID, collection: collection, ch: make(chan struct{}, 1)}
	h.subs[id] = sub

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
	return sub.ch, cancel
}

// Publish señala a todos los suscriptores del owner y la colección.
// Nunca bloquea: si el buffer del suscriptor está lleno, la señal se descarta
// porque ya hay una pendiente equivalente.
func (h *Hub) Publish(ownerID, collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		if sub.owner != ownerID || sub.collection != collection {
			continue
		}
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}
