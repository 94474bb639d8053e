// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"cmp"
	"slices"

	"github.com/clogs-dev/clogs/lib/backend"
	"github.com/clogs-dev/clogs/lib/timeline"
)

type rowKind int

const (
	rowFleet rowKind = iota
	rowGroupHeader
	rowContainer
)

// orphanGroupName labels containers that belong to no service.
const orphanGroupName = "orphans"

// containerGroup is one service, or the orphans, with its containers
// sorted by name.
type containerGroup struct {
	Name        string
	ServiceType backend.ServiceType
	Orphans     bool
	Containers  []backend.Container
}

// listRow is one line of the container list.
type listRow struct {
	Kind rowKind

	// SubjectID is the timeline subject drawn on this row. Group
	// headers have none.
	SubjectID string

	Group     *containerGroup
	Container backend.Container

	// Positions are matched rune offsets in the container name.
	Positions []int
}

// groupContainers arranges the inventory into services sorted by name
// followed by the orphans. When only is non-empty, containers whose
// key and name are both absent from it are dropped, as are groups left
// empty.
func groupContainers(services backend.ServiceMap, orphans []backend.Container, only map[string]bool) []containerGroup {
	keep := func(container backend.Container) bool {
		return len(only) == 0 || only[container.Key()] || only[container.Name]
	}

	var groups []containerGroup
	for name, members := range services {
		group := containerGroup{Name: name}
		for _, member := range members {
			if group.ServiceType == "" {
				group.ServiceType = member.Type
			}
			if keep(member.Container) {
				group.Containers = append(group.Containers, member.Container)
			}
		}
		if len(group.Containers) > 0 {
			sortContainers(group.Containers)
			groups = append(groups, group)
		}
	}
	slices.SortFunc(groups, func(a, b containerGroup) int { return cmp.Compare(a.Name, b.Name) })

	orphanGroup := containerGroup{Name: orphanGroupName, Orphans: true}
	for _, container := range orphans {
		if keep(container) {
			orphanGroup.Containers = append(orphanGroup.Containers, container)
		}
	}
	if len(orphanGroup.Containers) > 0 {
		sortContainers(orphanGroup.Containers)
		groups = append(groups, orphanGroup)
	}
	return groups
}

func sortContainers(containers []backend.Container) {
	slices.SortFunc(containers, func(a, b backend.Container) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Key(), b.Key()))
	})
}

// subjectIDs returns the fleet subject followed by every container key
// in list order.
func subjectIDs(groups []containerGroup) []string {
	subjects := []string{timeline.FleetSubject}
	for _, group := range groups {
		for _, container := range group.Containers {
			subjects = append(subjects, container.Key())
		}
	}
	return subjects
}

// layoutRows flattens groups into list rows, applying the filter. The
// fleet row comes first and always stays. A group whose own name
// matches keeps all its containers; otherwise only matching containers
// remain, and a group with none is omitted.
func layoutRows(groups []containerGroup, filter *FilterModel) []listRow {
	rows := []listRow{{Kind: rowFleet, SubjectID: timeline.FleetSubject}}
	for index := range groups {
		group := &groups[index]
		groupMatched := false
		if filter.Input != "" && !group.Orphans {
			_, groupMatched = filter.Match(backend.Container{Name: group.Name}, "")
		}

		var members []listRow
		for _, container := range group.Containers {
			match, ok := filter.Match(container, group.Name)
			if !ok && !groupMatched {
				continue
			}
			members = append(members, listRow{
				Kind:      rowContainer,
				SubjectID: container.Key(),
				Group:     group,
				Container: container,
				Positions: match.Positions,
			})
		}
		if len(members) == 0 {
			continue
		}
		rows = append(rows, listRow{Kind: rowGroupHeader, Group: group})
		rows = append(rows, members...)
	}
	return rows
}
