package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/ecs"
)

// BodyID identifies a solver body. IDs are never reused, so a stale ID can be
// compared and tested for validity safely after its body is gone.
type BodyID ecs.Entity

// JointID identifies a solver joint.
type JointID ecs.Entity

const (
	NoBody  BodyID  = 0
	NoJoint JointID = 0
)

func (id BodyID) String() string  { return "body " + ecs.Entity(id).String() }
func (id JointID) String() string { return "joint " + ecs.Entity(id).String() }

type JointKind int

const (
	// JointWeld locks relative position and rotation.
	JointWeld JointKind = iota
	// JointRevolute pins a shared point and lets the bodies spin freely.
	JointRevolute
)

func (k JointKind) String() string {
	switch k {
	case JointWeld:
		return "weld"
	case JointRevolute:
		return "revolute"
	default:
		return "unknown"
	}
}

type Material struct {
	Density           float64
	Friction          float64
	Restitution       float64
	RollingResistance float64
}

// ShapeDef describes a single convex shape in body-local meters. A positive
// Radius makes a circle centred on the body; otherwise Verts is a convex loop
// around the body origin.
type ShapeDef struct {
	Radius float64
	Verts  []cp.Vector
}

func (s ShapeDef) IsCircle() bool {
	return s.Radius > 0
}

type BodyDef struct {
	Position       cp.Vector
	Angle          float64
	Shape          ShapeDef
	Material       Material
	LinearDamping  float64
	AngularDamping float64
}

// Contact is one touching pair seen from a body. Other is NoBody for the
// ground.
type Contact struct {
	Other   BodyID
	Impulse float64
}

// HitEvent reports a first contact whose normal approach speed exceeded the
// solver's hit threshold. Either side is NoBody for the ground.
type HitEvent struct {
	A, B          BodyID
	ApproachSpeed float64
}

// Solver is the rigid-body backend the sandbox drives. Queries on invalid IDs
// return zero values and mutations on invalid IDs do nothing.
type Solver interface {
	CreateBody(def BodyDef) BodyID
	DestroyBody(id BodyID)
	BodyValid(id BodyID) bool
	BodyCount() int

	// CreateJoint anchors both bodies at a shared world point. Returns NoJoint
	// for self joints and invalid endpoints.
	CreateJoint(kind JointKind, a, b BodyID, anchor cp.Vector) JointID
	DestroyJoint(id JointID)
	JointValid(id JointID) bool

	Position(id BodyID) cp.Vector
	Angle(id BodyID) float64
	Velocity(id BodyID) cp.Vector
	AngularVelocity(id BodyID) float64
	Mass(id BodyID) float64
	Dynamic(id BodyID) bool

	SetTransform(id BodyID, p cp.Vector, angle float64)
	SetVelocity(id BodyID, v cp.Vector)
	SetAngularVelocity(id BodyID, w float64)
	SetDamping(id BodyID, linear, angular float64)
	SetMaterial(id BodyID, m Material)
	ApplyForce(id BodyID, f cp.Vector)
	Wake(id BodyID)

	TestPoint(id BodyID, p cp.Vector) bool
	Bounds(id BodyID) cp.BB
	Contacts(id BodyID) []Contact
	// HitEvents returns the hits recorded during the last Step.
	HitEvents() []HitEvent

	// SetGround replaces the static ground box.
	SetGround(center cp.Vector, halfWidth, halfHeight, friction float64)
	Step(dt float64, iterations int)
}
