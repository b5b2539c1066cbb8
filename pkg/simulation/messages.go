package simulation

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/steering"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrMalformedTick is returned by InputFromTick when a field is missing or has the wrong kind.
var ErrMalformedTick = errors.New("malformed tick message")

// Tick message fields.
const (
	tickFieldX       = "x"
	tickFieldY       = "y"
	tickFieldEngaged = "engaged"
)

// NewTickMessage wraps the input of one tick in a google.protobuf.Struct
// {x: number, y: number, engaged: bool} so it can travel through the actor mailbox.
func NewTickMessage(in steering.Input) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		tickFieldX:       structpb.NewNumberValue(in.Target.X),
		tickFieldY:       structpb.NewNumberValue(in.Target.Y),
		tickFieldEngaged: structpb.NewBoolValue(in.Engaged),
	}}
}

// NewRefreshMessage asks the world to publish its current snapshot without ticking.
func NewRefreshMessage() *emptypb.Empty {
	return &emptypb.Empty{}
}

// InputFromTick decodes a message built by NewTickMessage.
func InputFromTick(msg *structpb.Struct) (steering.Input, error) {
	x, err := numberField(msg, tickFieldX)
	if err != nil {
		return steering.Input{}, err
	}
	y, err := numberField(msg, tickFieldY)
	if err != nil {
		return steering.Input{}, err
	}
	engaged := false
	if v, ok := msg.GetFields()[tickFieldEngaged]; ok {
		b, ok := v.GetKind().(*structpb.Value_BoolValue)
		if !ok {
			return steering.Input{}, fmt.Errorf("%w: %q is not a bool", ErrMalformedTick, tickFieldEngaged)
		}
		engaged = b.BoolValue
	}
	return steering.Input{Target: geometry.NewVector2D(x, y), Engaged: engaged}, nil
}

func numberField(msg *structpb.Struct, name string) (float64, error) {
	v, ok := msg.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrMalformedTick, name)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedTick, name)
	}
	return n.NumberValue, nil
}
