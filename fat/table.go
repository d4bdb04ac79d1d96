package fat

import (
	"fatfs/utils"

	"github.com/pkg/errors"
)

// BlockID identifies a file block.
type BlockID uint32

// None is stored as first block of a file that owns no blocks. Block 0 is
// reserved, so it never names real data.
const None BlockID = 0

type kind uint8

const (
	free kind = iota
	last
	next
)

// Entry is one slot of the allocation table: free, the last block of a
// chain, or a link to the next block.
type Entry struct {
	kind kind
	next BlockID
}

func (e Entry) IsFree() bool { return e.kind == free }
func (e Entry) IsLast() bool { return e.kind == last }

// Next returns the successor stored in e, ok is false unless e is a link.
func (e Entry) Next() (BlockID, bool) {
	return e.next, e.kind == next
}

// Link 用于诊断输出的一条 (块 -> 后继) 记录
type Link struct {
	Block BlockID
	Next  BlockID
	Last  bool
}

// Table 文件分配表，每个块对应一个 Entry
type Table struct {
	entries []Entry
	nfree   int
	// search 之前的块都已被占用，下次从这里开始查找
	search BlockID
}

func NewTable(numBlocks int) *Table {
	t := &Table{
		entries: make([]Entry, numBlocks),
		search:  utils.FirstValidBlock,
	}
	if numBlocks > utils.FirstValidBlock {
		t.nfree = numBlocks - utils.FirstValidBlock
	}
	return t
}

// Len returns the number of table slots, reserved ones included.
func (t *Table) Len() int {
	return len(t.entries)
}

// FreeCount returns how many data blocks are free.
func (t *Table) FreeCount() int {
	return t.nfree
}

// UsedCount returns how many data blocks belong to some chain.
func (t *Table) UsedCount() int {
	if len(t.entries) <= utils.FirstValidBlock {
		return 0
	}
	return len(t.entries) - utils.FirstValidBlock - t.nfree
}

// InRange reports whether b may hold file data.
func (t *Table) InRange(b BlockID) bool {
	return b >= utils.FirstValidBlock && int(b) < len(t.entries)
}

// Entry returns the raw slot for b. Out-of-range blocks read as free.
func (t *Table) Entry(b BlockID) Entry {
	if !t.InRange(b) {
		return Entry{}
	}
	return t.entries[b]
}

// Allocate takes the lowest free block and marks it as the end of a chain.
func (t *Table) Allocate() (BlockID, error) {
	for b := t.search; int(b) < len(t.entries); b++ {
		if t.entries[b].kind == free {
			t.entries[b] = Entry{kind: last}
			t.nfree--
			t.search = b + 1
			return b, nil
		}
	}
	t.search = BlockID(len(t.entries))
	return None, utils.ErrStorageExhausted
}

// Link appends nb after prev. prev must currently end its chain and nb must
// be a freshly allocated block.
func (t *Table) Link(prev, nb BlockID) error {
	if !t.InRange(prev) || !t.InRange(nb) {
		return errors.Wrapf(utils.ErrCorruptChain, "link %d -> %d out of range", prev, nb)
	}
	if t.entries[prev].kind != last || t.entries[nb].kind != last {
		return errors.Wrapf(utils.ErrCorruptChain, "link %d -> %d: blocks are not chain ends", prev, nb)
	}
	t.entries[prev] = Entry{kind: next, next: nb}
	return nil
}

// Successor returns the block following b. ok is false when b ends its chain.
// A free or out-of-range block, or a link to one, is reported as corruption.
func (t *Table) Successor(b BlockID) (nb BlockID, ok bool, err error) {
	if !t.InRange(b) {
		return None, false, errors.Wrapf(utils.ErrCorruptChain, "block %d out of range", b)
	}
	e := t.entries[b]
	switch e.kind {
	case last:
		return None, false, nil
	case free:
		return None, false, errors.Wrapf(utils.ErrCorruptChain, "block %d is free", b)
	}
	if !t.InRange(e.next) || t.entries[e.next].kind == free {
		return None, false, errors.Wrapf(utils.ErrCorruptChain, "block %d points to invalid block %d", b, e.next)
	}
	return e.next, true, nil
}

// FreeChain releases every block of the chain starting at start and returns
// how many blocks were freed. None is a no-op. A corrupt chain is reported
// before any block is released, so the table is left untouched.
func (t *Table) FreeChain(start BlockID) (int, error) {
	chain, err := t.Chain(start)
	if err != nil {
		return 0, errors.WithMessagef(err, "freeing chain %d", start)
	}
	for _, b := range chain {
		t.release(b)
	}
	return len(chain), nil
}

// TruncateAfter makes b the last block of its chain and frees everything
// that followed it. Nothing changes when the rest of the chain is corrupt.
func (t *Table) TruncateAfter(b BlockID) (int, error) {
	if _, err := t.Chain(b); err != nil {
		return 0, err
	}
	nb, ok, _ := t.Successor(b)
	t.entries[b] = Entry{kind: last}
	if !ok {
		return 0, nil
	}
	return t.FreeChain(nb)
}

// Chain resolves the chain starting at start.
func (t *Table) Chain(start BlockID) ([]BlockID, error) {
	if start == None {
		return nil, nil
	}
	if !t.InRange(start) || t.entries[start].kind == free {
		return nil, errors.Wrapf(utils.ErrCorruptChain, "chain starts at invalid block %d", start)
	}
	chain := []BlockID{start}
	b := start
	for {
		nb, ok, err := t.Successor(b)
		if err != nil {
			return chain, err
		}
		if !ok {
			return chain, nil
		}
		// 链长超过块总数一定有环
		if len(chain) >= len(t.entries) {
			return chain, errors.Wrapf(utils.ErrCorruptChain, "chain %d loops", start)
		}
		chain = append(chain, nb)
		b = nb
	}
}

// Used lists every block that belongs to a chain, in index order.
func (t *Table) Used() []Link {
	var links []Link
	for b := BlockID(utils.FirstValidBlock); int(b) < len(t.entries); b++ {
		e := t.entries[b]
		switch e.kind {
		case last:
			links = append(links, Link{Block: b, Last: true})
		case next:
			links = append(links, Link{Block: b, Next: e.next})
		}
	}
	return links
}

func (t *Table) release(b BlockID) {
	t.entries[b] = Entry{}
	t.nfree++
	if b < t.search {
		t.search = b
	}
}
