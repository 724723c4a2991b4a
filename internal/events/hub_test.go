package events

import (
	"context"
	"testing"
	"time"
)

func TestHub_FiltraPorTabla(t *testing.T) {
	hub := NewHub()

	pedidos, cancelPedidos := hub.Subscribe("pedidos")
	defer cancelPedidos()
	todas, cancelTodas := hub.Subscribe("")
	defer cancelTodas()

	_ = hub.PublishCambio(context.Background(), "reservas", "CREAR_RESERVA", "r1")
	_ = hub.PublishCambio(context.Background(), "pedidos", "CREAR_PEDIDO", "p1")

	select {
	case c := <-pedidos:
		if c.Tabla != "pedidos" || c.RegistroID != "p1" {
			t.Errorf("cambio inesperado: %+v", c)
		}
	case <-time.After(time.Second):
		t.Fatal("el suscriptor de pedidos no recibió su cambio")
	}

	recibidos := 0
	timeout := time.After(time.Second)
	for recibidos < 2 {
		select {
		case <-todas:
			recibidos++
		case <-timeout:
			t.Fatalf("el suscriptor global recibió %d de 2", recibidos)
		}
	}
}

func TestHub_SuscriptorLentoNoBloquea(t *testing.T) {
	hub := NewHub()

	_, cancel := hub.Subscribe("pedidos")
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Más cambios que el buffer del canal; nadie drena.
		for i := 0; i < 100; i++ {
			hub.Broadcast(Cambio{Tabla: "pedidos", Accion: "CREAR_PEDIDO"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast se bloqueó con un suscriptor lento")
	}
}

func TestHub_CancelCierraElCanal(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("pedidos")
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("se esperaba canal cerrado")
		}
	case <-time.After(time.Second):
		t.Fatal("el canal no se cerró")
	}

	// Un broadcast posterior no debe entrar en pánico.
	hub.Broadcast(Cambio{Tabla: "pedidos"})
}
