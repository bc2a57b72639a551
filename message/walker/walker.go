// Package walker provides depth-first traversal over the parts of a message
// and over the structural components of a parsed message tree.
package walker

import (
	"github.com/zostay/go-mime/component"
	"github.com/zostay/go-mime/message"
)

// PartWalker is a function that can be processed for each part of a message.
type PartWalker func(depth, i int, part message.Part) error

// Walk performs a depth first search for all the parts of a message starting
// with the message itself. It calls the PartWalker for each part of the
// message. If the PartWalker returns an error, then processing stops
// immediately and the error is returned.
func (w PartWalker) Walk(msg message.Generic) error {
	type part struct {
		depth int
		i     int
		part  message.Generic
	}

	openStack := make([]part, 0, 10)

	pushStack := func(depth int, msg message.Generic) {
		if !msg.IsMultipart() {
			return
		}
		parts := msg.GetParts()
		for i := len(parts) - 1; i >= 0; i-- {
			p := parts[i]
			openStack = append(openStack, part{depth, i, p})
		}
	}

	popStack := func() part {
		end := len(openStack) - 1
		p := openStack[end]
		openStack = openStack[:end]
		return p
	}

	openStack = append(openStack, part{0, 0, msg})
	for len(openStack) > 0 {
		p := popStack()
		if err := w(p.depth, p.i, p.part); err != nil {
			return err
		}
		pushStack(p.depth+1, p.part)
	}

	return nil
}

// WalkOpaque will call the PartWalker function for each leaf part using a
// depth first traversal. It will terminate the walk immediately if the
// PartWalker returns an error and will return the error.
func (w PartWalker) WalkOpaque(msg message.Generic) error {
	var opw PartWalker = func(depth, i int, part message.Part) error {
		if !part.IsMultipart() {
			if err := w(depth, i, part); err != nil {
				return err
			}
		}
		return nil
	}
	return opw.Walk(msg)
}

// WalkMultipart will call the PartWalker function for each branch part using
// a depth first traversal. It will terminate the walk immediately if the
// PartWalker returns an error and will return that error.
func (w PartWalker) WalkMultipart(msg message.Generic) error {
	var mlw PartWalker = func(depth, i int, part message.Part) error {
		if part.IsMultipart() {
			if err := w(depth, i, part); err != nil {
				return err
			}
		}
		return nil
	}
	return mlw.Walk(msg)
}

// Processor is a callback that can be passed to the AndProcess() function to
// do any kind of generic processing of a message and its sub-parts.
//
// The Processor is given a part to process and the ancestry of the part. If
// len(parents) is zero, then this is the top-level part (i.e., the top-level
// part that AndProcess() was called upon, which might not be the root
// message).
//
// The Processor may return an error to cause AndProcess() to terminate
// immediately and return that error.
type Processor func(part message.Part, parents []message.Part) error

// AndProcess will walk the message parts tree of a message (or a part of a
// message) and call the given Processor function for each part found. It
// will terminate once all parts have been processed and return nil. If the
// Processor function returns an error, it will terminate early and return
// that error.
func AndProcess(
	processor Processor,
	msg message.Part,
) error {
	parents := make([]message.Part, 0, 10)
	return andProcess(processor, msg, parents)
}

func andProcess(
	processor Processor,
	part message.Part,
	parents []message.Part,
) error {
	err := processor(part, parents)
	if err != nil {
		return err
	}

	if part.IsMultipart() {
		parents = append(parents, part)
		for _, subPart := range part.GetParts() {
			err := andProcess(processor, subPart, parents)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// ComponentWalker is a function processed for each structural component of a
// parsed message tree: the message itself, its header, each header field,
// and each sub-part, in document order.
type ComponentWalker func(depth int, c component.Component) error

// Walk performs a depth first traversal of the structural components
// reachable from c, calling the ComponentWalker for each. Traversal stops
// immediately when the ComponentWalker returns an error and that error is
// returned. This is the introspection counterpart to PartWalker: it descends
// into headers and fields, not just message parts, so it sees every node
// that carries parse offsets.
func (w ComponentWalker) Walk(c component.Component) error {
	return w.walk(0, c)
}

func (w ComponentWalker) walk(depth int, c component.Component) error {
	if err := w(depth, c); err != nil {
		return err
	}
	for _, child := range c.ChildComponents() {
		if err := w.walk(depth+1, child); err != nil {
			return err
		}
	}
	return nil
}
