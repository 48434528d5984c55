package handlers

import (
	"net/url"
	"sort"
	"strings"

	"github.com/nasa/vsm/domain"
)

func toStatusResponse(statuses []domain.NodeStatus) StatusResponse {
	nodes := make([]NodeStatus, 0, len(statuses))
	for _, st := range statuses {
		cams := make([]CameraStatus, 0, len(st.Cameras))
		for _, c := range st.Cameras {
			cams = append(cams, CameraStatus{Camera: c.Camera, Rendered: c.Rendered})
		}
		addrs := st.Addresses
		if addrs == nil {
			addrs = []string{}
		}
		nodes = append(nodes, NodeStatus{
			ID:             st.ID,
			Hostname:       st.Hostname,
			Addresses:      addrs,
			Port:           st.Port,
			Classification: string(st.Classification),
			ClientCount:    st.ClientCount,
			Cameras:        cams,
		})
	}
	return StatusResponse{Nodes: nodes}
}

// toStreamsResponse lists every distinct camera set offered by nodes, each camera linked under base.
// Sets are ordered by their sorted camera lists.
func toStreamsResponse(nodes []domain.RenderNode, base string) StreamsResponse {
	seen := make(map[string]struct{})
	var sets [][]string
	for _, n := range nodes {
		cams := n.Cameras.Sorted()
		if len(cams) == 0 {
			continue
		}
		key := strings.Join(cams, "\x00")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		sets = append(sets, cams)
	}
	sort.Slice(sets, func(i, j int) bool {
		return strings.Join(sets[i], "\x00") < strings.Join(sets[j], "\x00")
	})

	out := StreamsResponse{Sets: make([][]Stream, 0, len(sets))}
	for _, cams := range sets {
		streams := make([]Stream, 0, len(cams))
		for _, c := range cams {
			streams = append(streams, Stream{Camera: c, URL: base + "/" + url.PathEscape(c)})
		}
		out.Sets = append(out.Sets, streams)
	}
	return out
}
