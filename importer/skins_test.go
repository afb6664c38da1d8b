package importer

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

func skinnedDoc() *gltf.Document {
	doc := triangleDoc()
	doc.Nodes = []*gltf.Node{
		{Name: "body", Mesh: gltf.Index(0), Skin: gltf.Index(0), Children: []uint32{1}},
		{Name: "root_bone", Children: []uint32{2}},
		{Name: "tip_bone"},
	}
	doc.Skins = []*gltf.Skin{
		{Name: "rig", Joints: []uint32{1, 2}},
	}
	return doc
}

func TestImportSkins(t *testing.T) {
	_, loader := newTestLoader()
	asset, err := loader.Create(skinnedDoc())
	if err != nil {
		t.Fatal("Create: ", err)
	}
	if len(asset.Skins) != 1 {
		t.Fatal("skins: ", len(asset.Skins))
	}
	skin := asset.Skins[0]
	if skin.Name != "rig" {
		t.Error("name: ", skin.Name)
	}
	if len(skin.Joints) != 2 ||
		skin.Joints[0] != asset.NodeMap[1] || skin.Joints[1] != asset.NodeMap[2] {
		t.Error("joints: ", skin.Joints)
	}
	if len(skin.Targets) != 1 || skin.Targets[0] != asset.NodeMap[0] {
		t.Error("targets: ", skin.Targets)
	}
}

func TestImportSkinsJointCount(t *testing.T) {
	engine, loader := newTestLoader()
	asset, err := loader.Create(skinnedDoc())
	if err != nil {
		t.Fatal("Create: ", err)
	}
	r := engine.Renderable(asset.NodeMap[0])
	if r == nil {
		t.Fatal("no renderable")
	}
	if r.JointCount != 2 {
		t.Error("joint count: ", r.JointCount)
	}
}

// A joint pointing at a node outside the instantiated scene breaks the
// import contract and must fail outright, not degrade to a partial
// asset.
func TestImportSkinsUnresolvedJoint(t *testing.T) {
	doc := skinnedDoc()
	doc.Skins[0].Joints = []uint32{1, 3}
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "orphan_bone"})
	// Node 3 exists in the document but is reachable from no scene root.

	_, loader := newTestLoader()
	asset, err := loader.Create(doc)
	if err == nil || errors.Is(err, ErrIncomplete) {
		t.Fatal("expected a hard error, got ", err)
	}
	if asset != nil {
		t.Error("expected no asset on contract violation")
	}
}
