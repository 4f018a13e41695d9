package model

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// URDFLoader reads a practical subset of the URDF robot description
// format: <robot>, <link>, and <joint> elements with origin, axis, and
// limit children. Joint types map as revolute/continuous → rotational and
// prismatic → linear; visual, collision, and inertial elements are
// ignored.
type URDFLoader struct{}

// Supports reports whether the filename has a .urdf or .xml extension.
func (l *URDFLoader) Supports(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".urdf") || strings.HasSuffix(lower, ".xml")
}

type urdfRobot struct {
	XMLName xml.Name    `xml:"robot"`
	Name    string      `xml:"name,attr"`
	Links   []urdfLink  `xml:"link"`
	Joints  []urdfJoint `xml:"joint"`
}

type urdfLink struct {
	Name string `xml:"name,attr"`
}

type urdfJoint struct {
	Name   string      `xml:"name,attr"`
	Type   string      `xml:"type,attr"`
	Parent urdfRef     `xml:"parent"`
	Child  urdfRef     `xml:"child"`
	Origin *urdfOrigin `xml:"origin"`
	Axis   *urdfAxis   `xml:"axis"`
	Limit  *urdfLimit  `xml:"limit"`
}

type urdfRef struct {
	Link string `xml:"link,attr"`
}

type urdfOrigin struct {
	XYZ string `xml:"xyz,attr"`
	RPY string `xml:"rpy,attr"`
}

type urdfAxis struct {
	XYZ string `xml:"xyz,attr"`
}

type urdfLimit struct {
	Lower float64 `xml:"lower,attr"`
	Upper float64 `xml:"upper,attr"`
}

// Load parses the URDF file at path.
func (l *URDFLoader) Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	var r urdfRobot
	if err := xml.Unmarshal(data, &r); err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return urdfToDocument(r)
}

func urdfToDocument(r urdfRobot) (Document, error) {
	doc := Document{Name: r.Name}

	// A joint attaches its child link under its parent link and carries
	// the child's frame offset; links without an incoming joint are roots.
	byChild := map[string]urdfJoint{}
	for _, j := range r.Joints {
		if _, dup := byChild[j.Child.Link]; dup {
			return Document{}, fmt.Errorf("urdf %q: link %q has two parent joints", r.Name, j.Child.Link)
		}
		byChild[j.Child.Link] = j
	}

	for _, ul := range r.Links {
		spec := LinkSpec{Name: ul.Name}
		j, hasJoint := byChild[ul.Name]
		if hasJoint {
			spec.Parent = j.Parent.Link
			if j.Origin != nil {
				xyz, err := parseTriple(j.Origin.XYZ)
				if err != nil {
					return Document{}, fmt.Errorf("joint %q origin xyz: %w", j.Name, err)
				}
				spec.Translation = xyz
				if j.Origin.RPY != "" {
					rpy, err := parseTriple(j.Origin.RPY)
					if err != nil {
						return Document{}, fmt.Errorf("joint %q origin rpy: %w", j.Name, err)
					}
					if rpy != ([3]float64{}) {
						spec.RPY = &rpy
					}
				}
			}
			js, err := urdfJointSpec(j)
			if err != nil {
				return Document{}, err
			}
			spec.Joint = js
		}
		doc.Links = append(doc.Links, spec)
	}
	return doc, nil
}

func urdfJointSpec(j urdfJoint) (*JointSpec, error) {
	spec := &JointSpec{Name: j.Name}
	switch j.Type {
	case "fixed":
		spec.Type = "fixed"
	case "revolute", "continuous":
		spec.Type = "rotational"
	case "prismatic":
		spec.Type = "linear"
	default:
		return nil, fmt.Errorf("joint %q: %q: %w", j.Name, j.Type, ErrUnknownJointType)
	}

	if j.Axis != nil {
		axis, err := parseTriple(j.Axis.XYZ)
		if err != nil {
			return nil, fmt.Errorf("joint %q axis: %w", j.Name, err)
		}
		spec.Axis = axis
	} else if spec.Type != "fixed" {
		spec.Axis = [3]float64{1, 0, 0} // URDF default axis
	}

	// continuous joints are unlimited by definition.
	if j.Limit != nil && j.Type != "continuous" {
		spec.Limits = &[2]float64{j.Limit.Lower, j.Limit.Upper}
	}
	return spec, nil
}

// parseTriple parses a whitespace-separated "x y z" attribute.
func parseTriple(s string) ([3]float64, error) {
	var out [3]float64
	if s == "" {
		return out, nil
	}
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return out, fmt.Errorf("want 3 values, got %d in %q", len(fields), s)
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return out, fmt.Errorf("value %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}
