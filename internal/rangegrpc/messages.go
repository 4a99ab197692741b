package rangegrpc

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/signalsfoundry/slant-range/model"
)

// Request object keys.
const (
	ObserverField = "observer"
	TargetField   = "target"
)

// ErrMissingField is returned when a request lacks a required object or a
// numeric coordinate.
var ErrMissingField = errors.New("missing or non-numeric field")

// GeodeticFromStruct reads {latitude, longitude, elevation} under key.
func GeodeticFromStruct(s *structpb.Struct, key string) (model.GeodeticPosition, error) {
	obj, err := objectField(s, key)
	if err != nil {
		return model.GeodeticPosition{}, err
	}
	var p model.GeodeticPosition
	if p.Latitude, err = numberField(obj, key, "latitude"); err != nil {
		return model.GeodeticPosition{}, err
	}
	if p.Longitude, err = numberField(obj, key, "longitude"); err != nil {
		return model.GeodeticPosition{}, err
	}
	if p.Elevation, err = numberField(obj, key, "elevation"); err != nil {
		return model.GeodeticPosition{}, err
	}
	return p, nil
}

// CartesianFromStruct reads {x, y, z} under key.
func CartesianFromStruct(s *structpb.Struct, key string) (model.CartesianPosition, error) {
	obj, err := objectField(s, key)
	if err != nil {
		return model.CartesianPosition{}, err
	}
	var p model.CartesianPosition
	if p.X, err = numberField(obj, key, "x"); err != nil {
		return model.CartesianPosition{}, err
	}
	if p.Y, err = numberField(obj, key, "y"); err != nil {
		return model.CartesianPosition{}, err
	}
	if p.Z, err = numberField(obj, key, "z"); err != nil {
		return model.CartesianPosition{}, err
	}
	return p, nil
}

// GeodeticStruct encodes p as a flat {latitude, longitude, elevation} object.
func GeodeticStruct(p model.GeodeticPosition) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"latitude":  structpb.NewNumberValue(p.Latitude),
		"longitude": structpb.NewNumberValue(p.Longitude),
		"elevation": structpb.NewNumberValue(p.Elevation),
	}}
}

// CartesianStruct encodes p as a flat {x, y, z} object.
func CartesianStruct(p model.CartesianPosition) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"x": structpb.NewNumberValue(p.X),
		"y": structpb.NewNumberValue(p.Y),
		"z": structpb.NewNumberValue(p.Z),
	}}
}

// wrap nests obj under key in a new request struct.
func wrap(key string, obj *structpb.Struct) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		key: structpb.NewStructValue(obj),
	}}
}

func objectField(s *structpb.Struct, key string) (*structpb.Struct, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	obj := v.GetStructValue()
	if obj == nil {
		return nil, fmt.Errorf("%w: %s is not an object", ErrMissingField, key)
	}
	return obj, nil
}

func numberField(obj *structpb.Struct, key, name string) (float64, error) {
	v, ok := obj.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", ErrMissingField, key, name)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s is not a number", ErrMissingField, key, name)
	}
	return n.NumberValue, nil
}
