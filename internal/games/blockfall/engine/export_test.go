package engine

// Test hooks for placing pieces and boards deterministically.

func (e *Engine) ForceCurrent(p *Piece) { e.current = p }

func (e *Engine) ForceNext(p *Piece) { e.next = p }

func (e *Engine) ForceBoard(b *Board) { e.board = b }
