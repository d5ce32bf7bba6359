package dashboard

import (
	"github.com/remora-hq/staffdesk/pkg/hiring/candidate"
	"github.com/remora-hq/staffdesk/pkg/hiring/position"
)

// Summary agrupa los conteos operativos del back-office: registros por
// estado en ambos workflows más el total de actores registrados.
type Summary struct {
	Candidates map[candidate.Status]int `json:"candidates"`
	Positions  map[position.Status]int  `json:"positions"`
	Actors     int                      `json:"actors"`
}
