// Package score loads gscore documents into a model.Score.
//
// A document looks like
//
//	<gscore version="...">
//	  <score tempo="120" beatspermeasure="4">
//	    <blockdefs>
//	      <blockdef name="intro">
//	        <message type="1" pitch="60" velocity="1.0" time="0.0"/>
//	      </blockdef>
//	    </blockdefs>
//	    <tracks>
//	      <track velocity="1.0">
//	        <block name="intro" velocity="1.0"/>
//	        <block/>
//	      </track>
//	    </tracks>
//	  </score>
//	</gscore>
//
// Any structural problem fails the whole load.
package score

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/jsphweid/gscore2midi/model"
	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

var (
	ErrStructure = errors.New("invalid score structure")
	ErrAttribute = errors.New("invalid score attribute")
)

const (
	tagGscore    = "gscore"
	tagScore     = "score"
	tagBlockDefs = "blockdefs"
	tagBlockDef  = "blockdef"
	tagMessage   = "message"
	tagTracks    = "tracks"
	tagTrack     = "track"
	tagBlock     = "block"
)

func LoadFile(path string) (*model.Score, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open score")
	}
	defer f.Close()
	return Load(f)
}

// Load parses a whole gscore document from r.
func Load(r io.Reader) (*model.Score, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var root node
	if err := decoder.Decode(&root); err != nil {
		return nil, errors.Wrap(err, "could not parse score document")
	}
	return fromRoot(root)
}

func fromRoot(root node) (*model.Score, error) {
	if root.tag() != tagGscore {
		return nil, errors.Wrapf(ErrStructure, "root element is <%s>, want <%s>", root.tag(), tagGscore)
	}
	if len(root.Children) != 1 {
		return nil, errors.Wrapf(ErrStructure, "<%s> has %d children, want 1", tagGscore, len(root.Children))
	}
	nodeScore := root.Children[0]
	if nodeScore.tag() != tagScore {
		return nil, errors.Wrapf(ErrStructure, "<%s> child is <%s>, want <%s>", tagGscore, nodeScore.tag(), tagScore)
	}

	var s model.Score
	s.Version, _ = root.attr("version")

	path := tagGscore + "/" + tagScore
	var err error
	if s.Tempo, err = nodeScore.intAttr(path, "tempo"); err != nil {
		return nil, err
	}
	if s.BeatsPerMeasure, err = nodeScore.intAttr(path, "beatspermeasure"); err != nil {
		return nil, err
	}
	if s.Tempo <= 0 || s.BeatsPerMeasure <= 0 {
		return nil, errors.Wrapf(ErrAttribute, "%s: tempo and beatspermeasure must be positive, got %d and %d",
			path, s.Tempo, s.BeatsPerMeasure)
	}
	s.KeySignature, _ = nodeScore.attr("keysignature")

	var nodeBlockDefs, nodeTracks *node
	for i := range nodeScore.Children {
		child := &nodeScore.Children[i]
		switch child.tag() {
		case tagBlockDefs:
			if nodeBlockDefs != nil {
				return nil, errors.Wrapf(ErrStructure, "%s: more than one <%s>", path, tagBlockDefs)
			}
			nodeBlockDefs = child
		case tagTracks:
			if nodeTracks != nil {
				return nil, errors.Wrapf(ErrStructure, "%s: more than one <%s>", path, tagTracks)
			}
			nodeTracks = child
		}
	}
	if nodeBlockDefs == nil {
		return nil, errors.Wrapf(ErrStructure, "%s: missing <%s>", path, tagBlockDefs)
	}
	if nodeTracks == nil {
		return nil, errors.Wrapf(ErrStructure, "%s: missing <%s>", path, tagTracks)
	}

	if s.BlockDefs, err = loadBlockDefs(path+"/"+tagBlockDefs, *nodeBlockDefs); err != nil {
		return nil, err
	}
	if s.Tracks, err = loadTracks(path+"/"+tagTracks, *nodeTracks); err != nil {
		return nil, err
	}
	return &s, nil
}

func loadBlockDefs(path string, n node) (map[string]model.BlockDef, error) {
	res := make(map[string]model.BlockDef, len(n.Children))
	for i, nodeBlockDef := range n.Children {
		p := childPath(path, tagBlockDef, i)
		if nodeBlockDef.tag() != tagBlockDef {
			return nil, errors.Wrapf(ErrStructure, "%s: unexpected <%s>", p, nodeBlockDef.tag())
		}
		name, err := nodeBlockDef.stringAttr(p, "name")
		if err != nil {
			return nil, err
		}
		if _, ok := res[name]; ok {
			return nil, errors.Wrapf(ErrStructure, "%s: block %q defined twice", p, name)
		}

		def := model.BlockDef{Name: name}
		for j, nodeMessage := range nodeBlockDef.Children {
			m, err := loadMessage(childPath(p, tagMessage, j), nodeMessage)
			if err != nil {
				return nil, err
			}
			def.Messages = append(def.Messages, m)
		}
		res[name] = def
	}
	return res, nil
}

func loadMessage(path string, n node) (model.MessageTemplate, error) {
	var m model.MessageTemplate
	if n.tag() != tagMessage {
		return m, errors.Wrapf(ErrStructure, "%s: unexpected <%s>", path, n.tag())
	}
	var err error
	if m.Type, err = n.intAttr(path, "type"); err != nil {
		return m, err
	}
	if m.Pitch, err = n.intAttr(path, "pitch"); err != nil {
		return m, err
	}
	if m.Velocity, err = n.floatAttr(path, "velocity"); err != nil {
		return m, err
	}
	if m.Time, err = n.floatAttr(path, "time"); err != nil {
		return m, err
	}
	return m, nil
}

func loadTracks(path string, n node) ([]model.Track, error) {
	res := make([]model.Track, 0, len(n.Children))
	for i, nodeTrack := range n.Children {
		p := childPath(path, tagTrack, i)
		if nodeTrack.tag() != tagTrack {
			return nil, errors.Wrapf(ErrStructure, "%s: unexpected <%s>", p, nodeTrack.tag())
		}

		var t model.Track
		var err error
		if t.Velocity, err = nodeTrack.floatAttr(p, "velocity"); err != nil {
			return nil, err
		}
		t.Program, _ = nodeTrack.attr("program")
		if _, ok := nodeTrack.attr("ignorenoteoff"); ok {
			ignore, err := nodeTrack.intAttr(p, "ignorenoteoff")
			if err != nil {
				return nil, err
			}
			t.IgnoreNoteOff = ignore != 0
		}

		for j, nodeBlock := range nodeTrack.Children {
			slot, err := loadBlockSlot(childPath(p, tagBlock, j), nodeBlock)
			if err != nil {
				return nil, err
			}
			t.Blocks = append(t.Blocks, slot)
		}
		res = append(res, t)
	}
	return res, nil
}

func loadBlockSlot(path string, n node) (model.BlockSlot, error) {
	var slot model.BlockSlot
	if n.tag() != tagBlock {
		return slot, errors.Wrapf(ErrStructure, "%s: unexpected <%s>", path, n.tag())
	}
	name, ok := n.attr("name")
	if !ok {
		return slot, nil
	}
	if name == "" {
		return slot, errors.Wrapf(ErrAttribute, "%s: empty block name", path)
	}
	velocity, err := n.floatAttr(path, "velocity")
	if err != nil {
		return slot, err
	}
	slot.Name = name
	slot.Velocity = velocity
	return slot, nil
}
