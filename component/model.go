package component

// GraphicsModel marks an entity as drawable
// Path names the mesh asset the renderer loads for it
type GraphicsModel struct {
	Path string
}

func NewGraphicsModel(path string) GraphicsModel {
	return GraphicsModel{Path: path}
}
