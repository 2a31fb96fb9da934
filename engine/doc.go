// Package engine holds the entity graph, its lock-guarded component storage and the
// fetch → freeze → run scheduling framework.
//
// Lock ordering: component types carry a fixed rank
//
//	Controller < Camera < Transform < RigidBody < GraphicsModel
//
// A goroutine holding a lock of rank r only acquires locks of rank >= r, and locks of
// equal rank are taken in entity traversal order. Freeze implementations therefore lock
// every handle of one type before moving to the next type. Guards are blocking; there is
// no try-lock or timeout.
package engine
