package graph

// EdgeStyle describes how an edge kind should be drawn. Styling is a
// presentation concern layered on top of the graph; it is a pure
// function of the edge kind and carries no graph semantics.
type EdgeStyle struct {
	Color  string `json:"color"`
	Width  int    `json:"width"`
	Dashed bool   `json:"dashed"`
}

// StyleForKind returns the rendering classification for an edge kind.
// Unknown kinds fall back to a neutral solid line.
func StyleForKind(kind string) EdgeStyle {
	switch kind {
	case "reports_to":
		return EdgeStyle{Color: "#64748b", Width: 2}
	case "influences":
		return EdgeStyle{Color: "#3b82f6", Width: 2, Dashed: true}
	case "aligned_with":
		return EdgeStyle{Color: "#22c55e", Width: 3}
	case "tension_with":
		return EdgeStyle{Color: "#ef4444", Width: 2, Dashed: true}
	default:
		return EdgeStyle{Color: "#94a3b8", Width: 1}
	}
}
