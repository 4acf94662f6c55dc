package spreadsheet

import (
	"slices"
)

// wouldCreateCycle reports whether pointing this cell at refs closes a
// cycle. The search starts at the proposed targets and follows existing
// references; reaching this cell means the new edges would loop back. Only
// cells that already exist are walked, since an absent cell has no edges.
func (c *Cell) wouldCreateCycle(refs []Position) bool {
	if len(refs) == 0 {
		return false
	}

	visited := make(map[Position]struct{}, len(refs))
	stack := slices.Clone(refs)

	for len(stack) > 0 {
		pos := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if pos == c.pos {
			return true
		}
		if _, seen := visited[pos]; seen {
			continue
		}
		visited[pos] = struct{}{}

		cell, exists := c.sheet.cells[pos]
		if !exists {
			continue
		}
		for next := range cell.references {
			if _, seen := visited[next]; !seen {
				stack = append(stack, next)
			}
		}
	}
	return false
}

// invalidateForEdit drops this cell's cache and cascades to every dependent.
// The cascade is unconditional here: the edited cell may be text or a
// never-evaluated formula and still have cached dependents.
func (c *Cell) invalidateForEdit() {
	if content, ok := c.content.(*formulaContent); ok {
		content.cache = nil
	}
	c.invalidateDependents()
}

// invalidateCache drops the memoized value and cascades depth-first. A cell
// with nothing cached is a no-op: either it was already visited in this
// cascade or it was never computed, and in both cases none of its
// dependents can hold a value computed from it.
func (c *Cell) invalidateCache() {
	content, ok := c.content.(*formulaContent)
	if !ok || content.cache == nil {
		return
	}
	content.cache = nil
	c.invalidateDependents()
}

func (c *Cell) invalidateDependents() {
	for pos := range c.dependents {
		if dependent, exists := c.sheet.cells[pos]; exists {
			dependent.invalidateCache()
		}
	}
}

// rewire detaches this cell from its current references and attaches it to
// refs, creating empty cells for referenced positions that have none. Must
// only run after the cycle check has passed.
func (c *Cell) rewire(refs []Position) {
	for pos := range c.references {
		if target, exists := c.sheet.cells[pos]; exists {
			delete(target.dependents, c.pos)
		}
	}
	clear(c.references)

	for _, pos := range refs {
		target := c.sheet.ensureCell(pos)
		c.references[pos] = struct{}{}
		target.dependents[c.pos] = struct{}{}
	}
}

// Dependents returns the positions of cells whose formulas read this cell,
// sorted.
func (c *Cell) Dependents() []Position {
	return sortedPositions(c.dependents)
}

// AllDependents returns every cell affected by a change to pos: direct and
// transitive dependents, sorted. An absent position affects nothing.
func (s *Sheet) AllDependents(pos Position) ([]Position, error) {
	if !pos.IsValid() {
		return nil, invalidPositionError(pos)
	}

	visited := make(map[Position]struct{})
	s.collectDependents(pos, visited)
	delete(visited, pos)
	return sortedPositions(visited), nil
}

// collectDependents recursively collects all dependents
func (s *Sheet) collectDependents(pos Position, visited map[Position]struct{}) {
	cell, exists := s.cells[pos]
	if !exists {
		return
	}
	for dependent := range cell.dependents {
		if _, seen := visited[dependent]; seen {
			continue
		}
		visited[dependent] = struct{}{}
		s.collectDependents(dependent, visited)
	}
}

func sortedPositions(set map[Position]struct{}) []Position {
	if len(set) == 0 {
		return nil
	}
	result := make([]Position, 0, len(set))
	for pos := range set {
		result = append(result, pos)
	}
	slices.SortFunc(result, comparePositions)
	return result
}
