package net

import (
	"bytes"
	"fmt"

	"github.com/ak033/462lab5/src/routing"
	"github.com/ugorji/go/codec"
)

// Advertisement is the datagram payload flooded between routers: one
// router's self-reported link-state row, relayed with a decremented hop
// budget.
//
// The wire form is JSON text:
//
//	{"link_state":[...],"router_id":0,"ttl":10}
type Advertisement struct {
	RouterID  int         `json:"router_id"`
	LinkState routing.Row `json:"link_state"`
	TTL       int         `json:"ttl"`
}

// Marshal - json encoding of Advertisement
func (a *Advertisement) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(a); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal ...
func (a *Advertisement) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(a)
}

// Validate checks an inbound Advertisement against the configured network
// size. Invalid messages are dropped by the receiver; they are never fatal.
func (a *Advertisement) Validate(size int) error {
	if a.RouterID < 0 || a.RouterID >= size {
		return fmt.Errorf("router_id %d outside [0,%d)", a.RouterID, size)
	}
	if len(a.LinkState) != size {
		return fmt.Errorf("link_state length %d, want %d", len(a.LinkState), size)
	}
	return nil
}
