package visibility

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

const DefaultThreshold = 0.10

// Gate dispara um callback uma única vez, quando um contêiner fica visível
// pela primeira vez acima do limiar. Rearmar um contêiner descarta a
// observação anterior: o callback antigo nunca dispara depois disso.
type Gate struct {
	mu        sync.Mutex
	threshold float64
	epoch     uint64
	armed     map[string]observation
}

type observation struct {
	epoch     uint64
	onVisible func(context.Context)
}

func NewGate(threshold float64) *Gate {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Gate{
		threshold: threshold,
		armed:     make(map[string]observation),
	}
}

func (g *Gate) Threshold() float64 {
	return g.threshold
}

// Arm passa a observar o contêiner, substituindo qualquer observação anterior
func (g *Gate) Arm(container string, onVisible func(context.Context)) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.epoch++
	g.armed[container] = observation{epoch: g.epoch, onVisible: onVisible}
}

// Rearm é Arm com outro nome, usado quando a seleção muda e o contêiner é reaproveitado
func (g *Gate) Rearm(container string, onVisible func(context.Context)) {
	g.Arm(container, onVisible)
}

// Disarm para de observar o contêiner
func (g *Gate) Disarm(container string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.armed, container)
}

// Armed indica se há observação ativa para o contêiner
func (g *Gate) Armed(container string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.armed[container]
	return ok
}

// Observe recebe a fração visível do contêiner. Se a observação estiver armada e
// ratio atingir o limiar, ela é desarmada e o callback roda no goroutine de quem chamou.
// Devolve true quando o callback disparou.
func (g *Gate) Observe(ctx context.Context, container string, ratio float64) bool {
	g.mu.Lock()
	obs, ok := g.armed[container]
	if !ok || ratio < g.threshold {
		g.mu.Unlock()
		return false
	}
	delete(g.armed, container)
	g.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"container": container,
		"ratio":     ratio,
		"epoch":     obs.epoch,
	}).Debug("visibility: container became visible")

	obs.onVisible(ctx)
	return true
}
