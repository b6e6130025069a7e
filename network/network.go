// Package network runs a cluster of Intcode machines, exchanging packets
// through their input and output instructions.
//
// Every node runs the same program. A node first reads its own address,
// and then reads packets as X, Y word pairs; -1 is read when no packet is
// waiting. A node sends a packet by writing the destination address, then
// X and Y. Packets to address NAT (255) are held by the NAT, which delivers
// the last one it received to node 0 whenever the network goes idle.
package network

import (
	"log"

	"github.com/ezrec/intcode/intcode"
)

// NAT_ADDRESS is the network address of the NAT.
const NAT_ADDRESS = intcode.NAT_ADDRESS

// Packet is a message between nodes.
type Packet[W intcode.Word] struct {
	Dest W
	X    W
	Y    W
}

// Node is a single machine on the network.
type Node[W intcode.Word] struct {
	Address int
	*intcode.Machine[W]

	queue  []W // Pending input words.
	output []W // Partial outgoing packet.
}

// Idle returns true if the node has no pending input.
func (node *Node[W]) Idle() bool {
	return len(node.queue) == 0
}

// turn runs the node until it polls an empty input queue, or halts.
// Completed packets are passed to send.
func (node *Node[W]) turn(send func(pkt Packet[W]) error) (err error) {
	polled := false
	for {
		if node.Awaiting() {
			value := W(-1)
			if len(node.queue) > 0 {
				value = node.queue[0]
				node.queue = node.queue[1:]
			} else if polled {
				// Leave the input pending until the next turn.
				return
			} else {
				polled = true
			}
			err = node.Input(value)
			if err != nil {
				return
			}
		}

		var irq intcode.Interrupt[W]
		irq, err = node.Run()
		if err != nil {
			return
		}

		switch irq.Kind {
		case intcode.IRQ_HALT:
			return
		case intcode.IRQ_OUTPUT:
			node.output = append(node.output, irq.Value)
			if len(node.output) == 3 {
				pkt := Packet[W]{Dest: node.output[0], X: node.output[1], Y: node.output[2]}
				node.output = node.output[:0]
				err = send(pkt)
				if err != nil {
					return
				}
			}
		}
	}
}

// Network of nodes.
type Network[W intcode.Word] struct {
	Verbose   bool // If set, logs each packet.
	Nodes     []*Node[W]
	MaxRounds int // If non-zero, the maximum number of scheduling rounds.

	Rounds int        // Completed scheduling rounds.
	Nat    *Packet[W] // Last packet held by the NAT, if any.
}

// New creates a network of size nodes all running the program source.
func New[W intcode.Word](source string, size int) (nw *Network[W], err error) {
	image, err := intcode.Parse[W](source)
	if err != nil {
		return
	}

	nw, err = NewFromImage(image, size)
	return
}

// NewFromImage creates a network of size nodes all running image.
func NewFromImage[W intcode.Word](image []W, size int) (nw *Network[W], err error) {
	if size <= 0 || size > NAT_ADDRESS {
		err = ErrSize
		return
	}

	nw = &Network[W]{
		Nodes: make([]*Node[W], size),
	}
	for n := range nw.Nodes {
		nw.Nodes[n] = &Node[W]{
			Address: n,
			Machine: intcode.NewFromImage(image),
		}
	}

	nw.Reset()

	return
}

// Reset all nodes, which will first read their own address.
func (nw *Network[W]) Reset() {
	for _, node := range nw.Nodes {
		node.Machine.Verbose = nw.Verbose
		node.Reset()
		node.queue = []W{W(node.Address)}
		node.output = node.output[:0]
	}

	nw.Rounds = 0
	nw.Nat = nil
}

// send routes a packet.
func (nw *Network[W]) send(pkt Packet[W]) (err error) {
	if nw.Verbose {
		log.Printf("network: %d <- (%d, %d)", int64(pkt.Dest), int64(pkt.X), int64(pkt.Y))
	}

	switch {
	case pkt.Dest == NAT_ADDRESS:
		nat := pkt
		nw.Nat = &nat
	case pkt.Dest >= 0 && int(pkt.Dest) < len(nw.Nodes):
		node := nw.Nodes[int(pkt.Dest)]
		node.queue = append(node.queue, pkt.X, pkt.Y)
	default:
		err = ErrDestination
	}

	return
}

// Run the network. sent is called for every packet sent by a node, and
// woke for every packet the NAT delivers to node 0. The network runs until
// either returns true, or an error occurs.
func (nw *Network[W]) Run(sent func(from int, pkt Packet[W]) bool, woke func(pkt Packet[W]) bool) (err error) {
	for {
		if nw.MaxRounds > 0 && nw.Rounds >= nw.MaxRounds {
			err = ErrStalled
			return
		}

		packets := 0
		running := 0
		for _, node := range nw.Nodes {
			if node.Halted() {
				continue
			}
			running++

			err = node.turn(func(pkt Packet[W]) (err error) {
				packets++
				err = nw.send(pkt)
				if err == nil && sent != nil && sent(node.Address, pkt) {
					err = errStop
				}
				return
			})
			if err == errStop {
				err = nil
				return
			}
			if err != nil {
				err = &ErrNode{Address: node.Address, Err: err}
				return
			}
		}

		nw.Rounds++

		if running == 0 {
			err = ErrHalted
			return
		}

		if packets > 0 || nw.Nat == nil {
			continue
		}

		idle := true
		for _, node := range nw.Nodes {
			idle = idle && (node.Idle() || node.Halted())
		}
		if !idle {
			continue
		}

		wake := *nw.Nat
		err = nw.send(Packet[W]{Dest: 0, X: wake.X, Y: wake.Y})
		if err != nil {
			return
		}
		if woke != nil && woke(wake) {
			return
		}
	}
}

// FirstNat runs the network until the first packet is sent to the NAT,
// returning its Y value.
func (nw *Network[W]) FirstNat() (y W, err error) {
	err = nw.Run(func(from int, pkt Packet[W]) bool {
		if pkt.Dest == NAT_ADDRESS {
			y = pkt.Y
			return true
		}
		return false
	}, nil)

	return
}

// FirstRepeatedWake runs the network until the NAT delivers the same Y
// value to node 0 twice in a row, returning that value.
func (nw *Network[W]) FirstRepeatedWake() (y W, err error) {
	var last *W
	err = nw.Run(nil, func(pkt Packet[W]) bool {
		if last != nil && *last == pkt.Y {
			y = pkt.Y
			return true
		}
		last = &pkt.Y
		return false
	})

	return
}
