package watch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/internal/application/watch"
)

func TestHub_PublishNotificaSoloAlOwnerYColeccion(t *testing.T) {
	hub := watch.NewHub()

	chA, cancelA := hub.Subscribe("owner-a", watch.CollectionCustomers)
	defer cancelA()
	chB, cancelB := hub.Subscribe("owner-b", watch.CollectionCustomers)
	defer cancelB()
	chR, cancelR := hub.Subscribe("owner-a", watch.CollectionReminders)
	defer cancelR()

	hub.Publish("owner-a", watch.CollectionCustomers)

	assert.Len(t, chA, 1, "el suscriptor del owner y colección debe recibir la señal")
	assert.Empty(t, chB, "otro owner no debe recibir la señal")
	assert.Empty(t, chR, "otra colección del mismo owner no debe recibir la señal")
}

func TestHub_SenalesSeCoalescen(t *testing.T) {
	hub := watch.NewHub()
	ch, cancel := hub.Subscribe("owner-a", watch.CollectionCustomers)
	defer cancel()

	// Ráfaga de mutaciones sin consumidor: no debe bloquear ni acumular.
	for i := 0; i < 10; i++ {
		hub.Publish("owner-a", watch.CollectionCustomers)
	}
	assert.Len(t, ch, 1, "las señales pendientes deben colapsar en una sola")

	// Consumida la señal, la siguiente mutación vuelve a señalar.
	<-ch
	hub.Publish("owner-a", watch.CollectionCustomers)
	require.Len(t, ch, 1)
}

func TestHub_CancelDaDeBaja(t *testing.T) {
	hub := watch.NewHub()
	ch, cancel := hub.Subscribe("owner-a", watch.CollectionCustomers)
	cancel()

	hub.Publish("owner-a", watch.CollectionCustomers)
	assert.Empty(t, ch, "tras cancelar no deben llegar señales")
}
