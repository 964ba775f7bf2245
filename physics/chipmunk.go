package physics

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/ecs"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeGround
)

type ChipmunkConfig struct {
	GravityY      float64 `yaml:"gravity_y"`
	CollisionSlop float64 `yaml:"collision_slop"`
	// HitThreshold is the minimum normal approach speed, in m/s, for a first
	// contact to be reported as a hit.
	HitThreshold float64 `yaml:"hit_threshold"`
	// RollingDamping converts rolling resistance into angular damping.
	RollingDamping float64 `yaml:"rolling_damping"`
}

func DefaultChipmunkConfig() ChipmunkConfig {
	return ChipmunkConfig{
		GravityY:       18,
		CollisionSlop:  0.005,
		HitThreshold:   1,
		RollingDamping: 40,
	}
}

func (c ChipmunkConfig) gravity() cp.Vector {
	return cp.Vector{X: 0, Y: c.GravityY}
}

// Chipmunk implements Solver on a cp.Space. Welds are a pivot plus a gear
// lock; revolute joints are a bare pivot. Bodies never sleep.
type Chipmunk struct {
	space         *cp.Space
	cfg           ChipmunkConfig
	handlersReady bool

	ids    *ecs.Store
	bodies *ecs.SparseSet[*bodyInfo]
	joints *ecs.SparseSet[*jointInfo]

	ground *cp.Shape
	hits   []HitEvent
}

type bodyInfo struct {
	id    BodyID
	body  *cp.Body
	shape *cp.Shape

	linearDamping  float64
	angularDamping float64
	rollingDamping float64

	joints []JointID
}

type jointInfo struct {
	kind        JointKind
	a, b        BodyID
	constraints []*cp.Constraint
}

var _ Solver = (*Chipmunk)(nil)

func NewChipmunk(cfg ChipmunkConfig) *Chipmunk {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cfg.gravity())
	if cfg.CollisionSlop > 0 {
		space.SetCollisionSlop(cfg.CollisionSlop)
	}
	c := &Chipmunk{
		space:  space,
		cfg:    cfg,
		ids:    ecs.NewStore(),
		bodies: ecs.NewSparseSet[*bodyInfo](),
		joints: ecs.NewSparseSet[*jointInfo](),
	}
	c.ensureHandlers()
	return c
}

func (c *Chipmunk) Space() *cp.Space {
	if c == nil {
		return nil
	}
	return c.space
}

func (c *Chipmunk) ensureHandlers() {
	if c.handlersReady || c.space == nil {
		return
	}
	pairs := [][2]cp.CollisionType{
		{collisionTypeBody, collisionTypeBody},
		{collisionTypeBody, collisionTypeGround},
	}
	for _, pair := range pairs {
		handler := c.space.NewCollisionHandler(pair[0], pair[1])
		handler.UserData = c
		handler.BeginFunc = recordHit
	}
	c.handlersReady = true
}

func recordHit(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	sys, ok := userData.(*Chipmunk)
	if !ok || sys == nil {
		return true
	}
	a, b := arb.Bodies()
	rel := a.Velocity().Sub(b.Velocity())
	speed := math.Abs(rel.Dot(arb.Normal()))
	if speed < sys.cfg.HitThreshold {
		return true
	}
	sys.hits = append(sys.hits, HitEvent{A: bodyIDOf(a), B: bodyIDOf(b), ApproachSpeed: speed})
	return true
}

func bodyIDOf(body *cp.Body) BodyID {
	if body == nil {
		return NoBody
	}
	id, _ := body.UserData.(BodyID)
	return id
}

func (c *Chipmunk) body(id BodyID) (*bodyInfo, bool) {
	if c == nil {
		return nil, false
	}
	return c.bodies.Get(ecs.Entity(id))
}

func hullOf(verts []cp.Vector) []cp.Vector {
	if len(verts) < 3 {
		return nil
	}
	hull := append([]cp.Vector(nil), verts...)
	n := cp.ConvexHull(len(hull), hull, nil, 0)
	return hull[:n]
}

func (c *Chipmunk) CreateBody(def BodyDef) BodyID {
	if c == nil || c.space == nil {
		return NoBody
	}
	density := def.Material.Density
	if density <= 0 {
		density = 1
	}

	var body *cp.Body
	var shape *cp.Shape
	if def.Shape.IsCircle() {
		r := def.Shape.Radius
		mass := math.Pi * r * r * density
		body = cp.NewBody(mass, cp.MomentForCircle(mass, 0, r, cp.Vector{}))
		shape = cp.NewCircle(body, r, cp.Vector{})
	} else {
		verts := hullOf(def.Shape.Verts)
		if len(verts) < 3 {
			return NoBody
		}
		area := cp.AreaForPoly(len(verts), verts, 0)
		if area <= 0 {
			return NoBody
		}
		mass := area * density
		body = cp.NewBody(mass, cp.MomentForPoly(mass, len(verts), verts, cp.Vector{}, 0))
		shape = cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0)
	}

	body.SetPosition(def.Position)
	body.SetAngle(def.Angle)
	shape.SetCollisionType(collisionTypeBody)

	info := &bodyInfo{body: body, shape: shape}
	info.linearDamping = def.LinearDamping
	info.angularDamping = def.AngularDamping
	c.applyMaterial(info, def.Material)
	body.SetVelocityUpdateFunc(info.updateVelocity)

	c.space.AddBody(body)
	c.space.AddShape(shape)

	info.id = BodyID(c.ids.Create())
	body.UserData = info.id
	c.bodies.Set(ecs.Entity(info.id), info)
	return info.id
}

// updateVelocity integrates like cp.BodyUpdateVelocity and then applies
// per-body damping in the 1/(1+c*dt) form.
func (info *bodyInfo) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(body, gravity, damping, dt)
	lin := 1 / (1 + dt*info.linearDamping)
	ang := 1 / (1 + dt*(info.angularDamping+info.rollingDamping))
	body.SetVelocityVector(body.Velocity().Mult(lin))
	body.SetAngularVelocity(body.AngularVelocity() * ang)
}

func (c *Chipmunk) applyMaterial(info *bodyInfo, m Material) {
	info.shape.SetFriction(m.Friction)
	info.shape.SetElasticity(m.Restitution)
	info.rollingDamping = m.RollingResistance * c.cfg.RollingDamping
}

func (c *Chipmunk) DestroyBody(id BodyID) {
	info, ok := c.body(id)
	if !ok {
		return
	}
	for _, jid := range append([]JointID(nil), info.joints...) {
		c.DestroyJoint(jid)
	}
	c.space.RemoveShape(info.shape)
	c.space.RemoveBody(info.body)
	info.body.UserData = nil
	c.bodies.Remove(ecs.Entity(id))
	c.ids.Destroy(ecs.Entity(id))
}

func (c *Chipmunk) BodyValid(id BodyID) bool {
	_, ok := c.body(id)
	return ok
}

func (c *Chipmunk) BodyCount() int {
	if c == nil {
		return 0
	}
	return c.bodies.Len()
}

func (c *Chipmunk) CreateJoint(kind JointKind, a, b BodyID, anchor cp.Vector) JointID {
	if a == b {
		return NoJoint
	}
	ia, okA := c.body(a)
	ib, okB := c.body(b)
	if !okA || !okB {
		return NoJoint
	}

	pivot := cp.NewPivotJoint(ia.body, ib.body, anchor)
	pivot.SetCollideBodies(false)
	constraints := []*cp.Constraint{pivot}
	if kind == JointWeld {
		gear := cp.NewGearJoint(ia.body, ib.body, ib.body.Angle()-ia.body.Angle(), 1)
		gear.SetCollideBodies(false)
		constraints = append(constraints, gear)
	}
	for _, con := range constraints {
		c.space.AddConstraint(con)
	}

	id := JointID(c.ids.Create())
	c.joints.Set(ecs.Entity(id), &jointInfo{kind: kind, a: a, b: b, constraints: constraints})
	ia.joints = append(ia.joints, id)
	ib.joints = append(ib.joints, id)
	return id
}

func (c *Chipmunk) DestroyJoint(id JointID) {
	if c == nil {
		return
	}
	j, ok := c.joints.Get(ecs.Entity(id))
	if !ok {
		return
	}
	for _, con := range j.constraints {
		c.space.RemoveConstraint(con)
	}
	for _, end := range []BodyID{j.a, j.b} {
		if info, ok := c.body(end); ok {
			info.joints = removeJointID(info.joints, id)
		}
	}
	c.joints.Remove(ecs.Entity(id))
	c.ids.Destroy(ecs.Entity(id))
}

func removeJointID(list []JointID, id JointID) []JointID {
	out := list[:0]
	for _, j := range list {
		if j != id {
			out = append(out, j)
		}
	}
	return out
}

func (c *Chipmunk) JointValid(id JointID) bool {
	if c == nil {
		return false
	}
	return c.joints.Has(ecs.Entity(id))
}

func (c *Chipmunk) Position(id BodyID) cp.Vector {
	if info, ok := c.body(id); ok {
		return info.body.Position()
	}
	return cp.Vector{}
}

func (c *Chipmunk) Angle(id BodyID) float64 {
	if info, ok := c.body(id); ok {
		return info.body.Angle()
	}
	return 0
}

func (c *Chipmunk) Velocity(id BodyID) cp.Vector {
	if info, ok := c.body(id); ok {
		return info.body.Velocity()
	}
	return cp.Vector{}
}

func (c *Chipmunk) AngularVelocity(id BodyID) float64 {
	if info, ok := c.body(id); ok {
		return info.body.AngularVelocity()
	}
	return 0
}

func (c *Chipmunk) Mass(id BodyID) float64 {
	if info, ok := c.body(id); ok {
		return info.body.Mass()
	}
	return 0
}

func (c *Chipmunk) Dynamic(id BodyID) bool {
	if info, ok := c.body(id); ok {
		return info.body.GetType() == cp.BODY_DYNAMIC
	}
	return false
}

func (c *Chipmunk) SetTransform(id BodyID, p cp.Vector, angle float64) {
	info, ok := c.body(id)
	if !ok {
		return
	}
	info.body.SetPosition(p)
	info.body.SetAngle(angle)
	info.shape.CacheBB()
}

func (c *Chipmunk) SetVelocity(id BodyID, v cp.Vector) {
	if info, ok := c.body(id); ok {
		info.body.SetVelocityVector(v)
	}
}

func (c *Chipmunk) SetAngularVelocity(id BodyID, w float64) {
	if info, ok := c.body(id); ok {
		info.body.SetAngularVelocity(w)
	}
}

func (c *Chipmunk) SetDamping(id BodyID, linear, angular float64) {
	if info, ok := c.body(id); ok {
		info.linearDamping = linear
		info.angularDamping = angular
	}
}

func (c *Chipmunk) SetMaterial(id BodyID, m Material) {
	if info, ok := c.body(id); ok {
		c.applyMaterial(info, m)
	}
}

func (c *Chipmunk) ApplyForce(id BodyID, f cp.Vector) {
	if info, ok := c.body(id); ok {
		info.body.ApplyForceAtWorldPoint(f, info.body.Position())
	}
}

func (c *Chipmunk) Wake(id BodyID) {
	if info, ok := c.body(id); ok {
		info.body.Activate()
	}
}

func (c *Chipmunk) TestPoint(id BodyID, p cp.Vector) bool {
	info, ok := c.body(id)
	if !ok {
		return false
	}
	info.shape.CacheBB()
	return info.shape.PointQuery(p).Distance <= 0
}

func (c *Chipmunk) Bounds(id BodyID) cp.BB {
	info, ok := c.body(id)
	if !ok {
		return cp.BB{}
	}
	info.shape.CacheBB()
	return info.shape.BB()
}

func (c *Chipmunk) Contacts(id BodyID) []Contact {
	info, ok := c.body(id)
	if !ok {
		return nil
	}
	var out []Contact
	info.body.EachArbiter(func(arb *cp.Arbiter) {
		a, b := arb.Bodies()
		other := a
		if a == info.body {
			other = b
		}
		out = append(out, Contact{Other: bodyIDOf(other), Impulse: arb.TotalImpulse().Length()})
	})
	return out
}

func (c *Chipmunk) HitEvents() []HitEvent {
	if c == nil || len(c.hits) == 0 {
		return nil
	}
	return append([]HitEvent(nil), c.hits...)
}

func (c *Chipmunk) SetGround(center cp.Vector, halfWidth, halfHeight, friction float64) {
	if c == nil || c.space == nil {
		return
	}
	if c.ground != nil {
		c.space.RemoveShape(c.ground)
		c.ground = nil
	}
	bb := cp.BB{L: center.X - halfWidth, B: center.Y - halfHeight, R: center.X + halfWidth, T: center.Y + halfHeight}
	shape := cp.NewBox2(c.space.StaticBody, bb, 0)
	shape.SetFriction(friction)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeGround)
	c.space.AddShape(shape)
	c.ground = shape
	c.bodies.Each(func(_ ecs.Entity, info *bodyInfo) {
		info.body.Activate()
	})
	log.Printf("Chipmunk: ground moved to y=%.2f", center.Y)
}

func (c *Chipmunk) Step(dt float64, iterations int) {
	if c == nil || c.space == nil || dt <= 0 {
		return
	}
	if iterations < 1 {
		iterations = 1
	}
	c.space.Iterations = uint(iterations)
	c.hits = c.hits[:0]
	c.space.Step(dt)
}
