package scenario

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/physics"
	"github.com/milk9111/physbox/sandbox"
)

type userFunc func(args ...tengo.Object) (tengo.Object, error)

func (r *Runner) module() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	add := func(name string, fn userFunc) {
		values[name] = &tengo.UserFunction{Name: name, Value: tengo.CallableFunc(fn)}
	}
	s := r.scene()

	add("width", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: s.Width()}, nil
	})
	add("height", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: s.Height()}, nil
	})
	add("ground", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: s.GroundTop()}, nil
	})
	add("water_line", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: s.Water().Baseline()}, nil
	})
	add("count", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(s.Len())}, nil
	})

	spawnAt := func(spawn func(cp.Vector) physics.BodyID) userFunc {
		return func(args ...tengo.Object) (tengo.Object, error) {
			p, err := pointArgs("spawn", args, 0)
			if err != nil {
				return nil, err
			}
			return idObject(spawn(p)), nil
		}
	}
	add("spawn_box", spawnAt(s.SpawnBox))
	add("spawn_circle", spawnAt(s.SpawnCircle))
	add("spawn_triangle", spawnAt(s.SpawnTriangle))

	add("spawn_quad", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		a, err := pointArgs("spawn_quad", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := pointArgs("spawn_quad", args, 2)
		if err != nil {
			return nil, err
		}
		return idObject(s.SpawnQuadFromDrag(a, b)), nil
	})
	add("spawn_polygon", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		points, err := pointList(args[0])
		if err != nil {
			return nil, err
		}
		return idObject(s.SpawnFreeform(points)), nil
	})

	add("weld", func(args ...tengo.Object) (tengo.Object, error) {
		a, b, err := idPair("weld", args)
		if err != nil {
			return nil, err
		}
		ia, ib := s.IndexOf(a), s.IndexOf(b)
		if ia < 0 || ib < 0 {
			return tengo.FalseValue, nil
		}
		anchor := s.Position(ia).Add(s.Position(ib)).Mult(0.5)
		return boolObject(s.CreateWeld(a, b, anchor)), nil
	})
	add("wheel", func(args ...tengo.Object) (tengo.Object, error) {
		host, wheel, err := idPair("wheel", args)
		if err != nil {
			return nil, err
		}
		i := s.IndexOf(wheel)
		if i < 0 {
			return tengo.FalseValue, nil
		}
		return boolObject(s.CreateWheel(host, wheel, s.Position(i))), nil
	})
	add("toggle_wheel", func(args ...tengo.Object) (tengo.Object, error) {
		i, err := indexArg(s, "toggle_wheel", args)
		if err != nil || i < 0 {
			return tengo.FalseValue, err
		}
		s.ToggleWheelMode(i)
		return tengo.TrueValue, nil
	})
	add("toggle", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		i, err := indexArg(s, "toggle", args[:1])
		if err != nil {
			return nil, err
		}
		name, ok := tengo.ToString(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "feature", Expected: "string", Found: args[1].TypeName()}
		}
		f, err := parseFeature(name)
		if err != nil {
			return nil, err
		}
		if i < 0 {
			return tengo.FalseValue, nil
		}
		s.ToggleFeature(i, f)
		return tengo.TrueValue, nil
	})
	add("delete", func(args ...tengo.Object) (tengo.Object, error) {
		i, err := indexArg(s, "delete", args)
		if err != nil || i < 0 {
			return tengo.FalseValue, err
		}
		s.DeleteBody(i)
		return tengo.TrueValue, nil
	})
	add("alive", func(args ...tengo.Object) (tengo.Object, error) {
		i, err := indexArg(s, "alive", args)
		if err != nil {
			return nil, err
		}
		return boolObject(i >= 0), nil
	})
	add("position", func(args ...tengo.Object) (tengo.Object, error) {
		i, err := indexArg(s, "position", args)
		if err != nil {
			return nil, err
		}
		if i < 0 {
			return tengo.UndefinedValue, nil
		}
		p := s.Position(i)
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: p.X}, &tengo.Float{Value: p.Y}}}, nil
	})
	add("undo", func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(s.UndoLastSpawn()), nil
	})
	add("reset", func(args ...tengo.Object) (tengo.Object, error) {
		s.Reset()
		return tengo.UndefinedValue, nil
	})

	add("location", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) == 0 {
			return &tengo.String{Value: s.Location().String()}, nil
		}
		name, ok := tengo.ToString(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "location", Expected: "string", Found: args[0].TypeName()}
		}
		loc, err := parseLocation(name)
		if err != nil {
			return nil, err
		}
		s.SetLocation(loc)
		return tengo.UndefinedValue, nil
	})
	add("poke", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 || len(args) > 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		nums, err := floats("poke", args)
		if err != nil {
			return nil, err
		}
		energy := 0.0
		if len(nums) == 3 {
			energy = nums[2]
		}
		s.PokeWater(nums[0], nums[1], energy)
		return tengo.UndefinedValue, nil
	})
	add("tick", func(args ...tengo.Object) (tengo.Object, error) {
		n := int64(1)
		if len(args) > 0 {
			v, ok := tengo.ToInt64(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "ticks", Expected: "int", Found: args[0].TypeName()}
			}
			n = v
		}
		if n < 0 || int64(r.ticks)+n > maxScriptTicks {
			return nil, fmt.Errorf("scenario: tick(%d) exceeds the %d tick budget", n, maxScriptTicks)
		}
		r.Tick(int(n))
		return tengo.UndefinedValue, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func idObject(id physics.BodyID) tengo.Object {
	if id == physics.NoBody {
		return tengo.UndefinedValue
	}
	return &tengo.Int{Value: int64(id)}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func floats(name string, args []tengo.Object) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, ok := tengo.ToFloat64(a)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{
				Name:     fmt.Sprintf("%s argument %d", name, i+1),
				Expected: "number",
				Found:    a.TypeName(),
			}
		}
		out[i] = v
	}
	return out, nil
}

func pointArgs(name string, args []tengo.Object, at int) (cp.Vector, error) {
	if len(args) < at+2 {
		return cp.Vector{}, tengo.ErrWrongNumArguments
	}
	xy, err := floats(name, args[at:at+2])
	if err != nil {
		return cp.Vector{}, err
	}
	return cp.Vector{X: xy[0], Y: xy[1]}, nil
}

func pointList(obj tengo.Object) ([]cp.Vector, error) {
	arr, ok := obj.(*tengo.Array)
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "points", Expected: "array", Found: obj.TypeName()}
	}
	out := make([]cp.Vector, 0, len(arr.Value))
	for _, item := range arr.Value {
		pair, ok := item.(*tengo.Array)
		if !ok || len(pair.Value) != 2 {
			return nil, tengo.ErrInvalidArgumentType{Name: "point", Expected: "[x, y]", Found: item.TypeName()}
		}
		p, err := pointArgs("point", pair.Value, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func idArg(name string, obj tengo.Object) (physics.BodyID, error) {
	if _, ok := obj.(*tengo.Undefined); ok {
		return physics.NoBody, nil
	}
	v, ok := tengo.ToInt64(obj)
	if !ok {
		return physics.NoBody, tengo.ErrInvalidArgumentType{Name: name, Expected: "body id", Found: obj.TypeName()}
	}
	return physics.BodyID(v), nil
}

func idPair(name string, args []tengo.Object) (physics.BodyID, physics.BodyID, error) {
	if len(args) != 2 {
		return physics.NoBody, physics.NoBody, tengo.ErrWrongNumArguments
	}
	a, err := idArg(name, args[0])
	if err != nil {
		return physics.NoBody, physics.NoBody, err
	}
	b, err := idArg(name, args[1])
	return a, b, err
}

// indexArg resolves a single body id argument to a scene index, -1 when the
// body is gone.
func indexArg(s *sandbox.Scene, name string, args []tengo.Object) (int, error) {
	if len(args) != 1 {
		return -1, tengo.ErrWrongNumArguments
	}
	id, err := idArg(name, args[0])
	if err != nil {
		return -1, err
	}
	return s.IndexOf(id), nil
}
