// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package listeners

import (
	"sync"

	"github.com/ava-labs/hellovm/codec"
	"github.com/ava-labs/hellovm/consts"
)

// Event describes one committed invocation.
type Event struct {
	Seq    uint64 `json:"seq"`
	TypeID uint8  `json:"typeId"`
	Output []byte `json:"output"`
}

type Listener chan *Event

type Listeners struct {
	l         sync.Mutex
	next      uint64
	listeners map[uint64]Listener
}

func New() *Listeners {
	return &Listeners{
		listeners: map[uint64]Listener{},
	}
}

// AddListener registers [c] and returns the id used to remove it.
func (w *Listeners) AddListener(c Listener) uint64 {
	w.l.Lock()
	defer w.l.Unlock()

	id := w.next
	w.next++
	w.listeners[id] = c
	return id
}

func (w *Listeners) RemoveListener(id uint64) {
	w.l.Lock()
	defer w.l.Unlock()

	delete(w.listeners, id)
}

// Accept sends [e] to every listener and returns the number of listeners
// that were too far behind to receive it.
func (w *Listeners) Accept(e *Event) int {
	w.l.Lock()
	defer w.l.Unlock()

	dropped := 0
	for _, listener := range w.listeners {
		select {
		case listener <- e:
		default:
			// drop message if client is not keeping up or abandoned
			dropped++
		}
	}
	return dropped
}

func (w *Listeners) Len() int {
	w.l.Lock()
	defer w.l.Unlock()

	return len(w.listeners)
}

func PackEvent(e *Event) ([]byte, error) {
	size := consts.Uint64Len + consts.ByteLen + consts.Uint32Len + len(e.Output)
	p := codec.NewWriter(size, size)
	p.PackUint64(e.Seq)
	p.PackByte(e.TypeID)
	p.PackBytes(e.Output)
	return p.Bytes(), p.Err()
}

func UnpackEvent(msg []byte) (*Event, error) {
	p := codec.NewReader(msg, len(msg))
	var e Event
	e.Seq = p.UnpackUint64(true)
	e.TypeID = p.UnpackByte()
	p.UnpackBytes(-1, false, &e.Output)
	if err := p.Err(); err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, codec.ErrTrailingBytes
	}
	return &e, nil
}
