package domain

// CameraStatus is one camera of a node as shown on the status page.
type CameraStatus struct {
	Camera   string `json:"camera"`
	Rendered bool   `json:"rendered"`
}

// NodeStatus is a flat, serialisable view of a render node.
// Used by GET /status and by the redis status mirror.
type NodeStatus struct {
	ID             string         `json:"id"`
	Hostname       string         `json:"hostname"`
	Addresses      []string       `json:"addresses"`
	Port           int            `json:"port"`
	Classification Classification `json:"classification"`
	ClientCount    string         `json:"client_count"`
	Cameras        []CameraStatus `json:"cameras"`
}

// ToStatus converts a node to its status view; cameras are sorted.
func (n RenderNode) ToStatus() NodeStatus {
	addrs := make([]string, 0, len(n.Addresses))
	for _, a := range n.Addresses {
		addrs = append(addrs, a.String())
	}
	cams := make([]CameraStatus, 0, n.Cameras.Len())
	for _, c := range n.Cameras.Sorted() {
		cams = append(cams, CameraStatus{Camera: c, Rendered: n.RenderedCameras.Has(c)})
	}
	return NodeStatus{
		ID:             n.ID,
		Hostname:       n.Hostname,
		Addresses:      addrs,
		Port:           n.Port,
		Classification: n.Classification,
		ClientCount:    n.ClientCount.String(),
		Cameras:        cams,
	}
}
