// Package limiter limita quantas tarefas assíncronas rodam ao mesmo tempo.
//
// As tarefas são admitidas em ordem FIFO (ordem das chamadas a Schedule) e
// cada tarefa que termina, com sucesso, erro ou panic, libera sua vaga para a
// próxima da fila. Tarefas concluídas não ficam referenciadas pelo limitador.
package limiter

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

const DefaultMaxConcurrency = 5

type Limiter struct {
	mu      sync.Mutex
	max     int
	running int
	queue   []func()
}

// New cria um limitador com até max tarefas simultâneas.
// Valores menores que 1 usam DefaultMaxConcurrency.
func New(max int) *Limiter {
	if max < 1 {
		max = DefaultMaxConcurrency
	}
	return &Limiter{max: max}
}

// Max devolve o limite de concorrência
func (l *Limiter) Max() int {
	return l.max
}

// Running devolve quantas tarefas estão em execução
func (l *Limiter) Running() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Pending devolve quantas tarefas aguardam admissão
func (l *Limiter) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Limiter) enqueue(job func()) {
	l.mu.Lock()
	l.queue = append(l.queue, job)
	l.mu.Unlock()
	l.pump()
}

// pump admite tarefas da fila enquanto houver vaga
func (l *Limiter) pump() {
	for {
		l.mu.Lock()
		if l.running >= l.max || len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		job := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		if len(l.queue) == 0 {
			l.queue = nil
		}
		l.running++
		l.mu.Unlock()

		go func() {
			defer l.release()
			job()
		}()
	}
}

func (l *Limiter) release() {
	l.mu.Lock()
	l.running--
	l.mu.Unlock()
	l.pump()
}

// Future é o resultado de uma tarefa agendada
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Done é fechado quando a tarefa termina
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait aguarda o resultado da tarefa ou o cancelamento de ctx
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Schedule enfileira a tarefa e devolve imediatamente um Future.
// A tarefa começa quando houver vaga; se ctx já estiver cancelado nesse momento
// ela não roda e o Future termina com ctx.Err().
func Schedule[T any](ctx context.Context, l *Limiter, task func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	l.enqueue(func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		defer func() {
			if r := recover(); r != nil {
				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]
				logrus.WithFields(logrus.Fields{
					"panic": r,
					"stack": string(stack),
				}).Error("limiter: task panicked")
				f.err = fmt.Errorf("tarefa interrompida por panic: %v", r)
			}
		}()

		f.value, f.err = task(ctx)
	})

	return f
}

// Do agenda a tarefa e aguarda seu resultado
func Do[T any](ctx context.Context, l *Limiter, task func(context.Context) (T, error)) (T, error) {
	return Schedule(ctx, l, task).Wait(ctx)
}
