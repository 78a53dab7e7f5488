package position

// Node adalah view hierarkis dari satu Position, hasil rekonstruksi
// dari record flat. Children mengikuti urutan iterasi input, tidak di-sort ulang.
type Node struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	ParentID *int    `json:"parent_id,omitempty"`
	Children []*Node `json:"children"`
}

// BuildTree merekonstruksi forest dari kumpulan Position flat dalam satu pass.
// Posisi yang ParentID-nya tidak ada di input dianggap root (dangling
// reference tidak membuat build gagal). Setiap input muncul tepat satu kali.
func BuildTree(positions []Position) []*Node {
	byID := make(map[int]*Node, len(positions))
	for _, p := range positions {
		byID[p.ID] = &Node{
			ID:       p.ID,
			Name:     p.Name,
			ParentID: p.ParentID,
			Children: []*Node{},
		}
	}

	roots := make([]*Node, 0)
	for _, p := range positions {
		node := byID[p.ID]
		if p.ParentID != nil {
			if parent, ok := byID[*p.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// Flatten melakukan pre-order traversal dan mengembalikan record flat.
// BuildTree(Flatten(forest)) menghasilkan forest yang isomorfik.
func Flatten(forest []*Node) []Position {
	out := make([]Position, 0)
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, Position{
			ID:       n.ID,
			Name:     n.Name,
			ParentID: n.ParentID,
		})
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range forest {
		walk(r)
	}
	return out
}

// WouldCreateCycle berjalan dari calon parent ke atas lewat rantai ParentID.
// True jika id ketemu di rantai tersebut. Visited set menjaga dari input
// yang sudah korup (siklus existing) agar tidak infinite loop.
func WouldCreateCycle(byID map[int]Position, id int, newParentID *int) bool {
	if newParentID == nil {
		return false
	}

	visited := make(map[int]bool)
	current := newParentID
	for current != nil {
		if *current == id {
			return true
		}
		if visited[*current] {
			return false
		}
		visited[*current] = true

		p, ok := byID[*current]
		if !ok {
			return false
		}
		current = p.ParentID
	}

	return false
}
