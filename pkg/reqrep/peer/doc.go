// Package peer runs the responding side of a request/reply channel inside the
// current process.
//
// A Responder binds an address in reply (or pair) mode and answers every
// inbound message through a Handler. It exists for tests and examples; real
// services usually live in another process and another language.
//
//	r, err := peer.Listen(ctx, "inproc://echo")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	h, _ := reqrep.Open(ctx, "inproc://echo")
//	reply, _ := reqrep.Exchange(ctx, h, []byte{1, 2, 3}) // []byte{1, 2, 3}
//
// Handlers run on the Responder's single serving goroutine, one request at a
// time, and must return once their context is done.
package peer
