package importer

import (
	"github.com/pkg/errors"

	"github.com/hisui/glscene/scene"
)

// importSkins runs after the full node traversal: joints may be visited
// after the node referencing them, so resolution cannot happen inline.
// A joint node that was never instantiated is a contract violation and
// fails the import.
func (l *Loader) importSkins(ctx *buildContext) error {
	doc := ctx.doc
	if len(doc.Skins) == 0 {
		return nil
	}
	ctx.asset.Skins = make([]Skin, len(doc.Skins))
	for i, src := range doc.Skins {
		dst := &ctx.asset.Skins[i]
		dst.Name = src.Name
		dst.Joints = make([]scene.Entity, len(src.Joints))
		for j, nodeIndex := range src.Joints {
			entity, ok := ctx.asset.NodeMap[int(nodeIndex)]
			if !ok {
				return errors.Errorf("skin %d: joint node %d was never instantiated", i, nodeIndex)
			}
			dst.Joints[j] = entity
		}
	}

	// Record which renderables each skin drives.
	for nodeIndex, node := range doc.Nodes {
		if node.Skin == nil || int(*node.Skin) >= len(ctx.asset.Skins) {
			continue
		}
		entity, ok := ctx.asset.NodeMap[nodeIndex]
		if !ok {
			// Node is outside the selected scene.
			continue
		}
		skin := &ctx.asset.Skins[*node.Skin]
		skin.Targets = append(skin.Targets, entity)
	}
	return nil
}
