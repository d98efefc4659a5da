package main

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yea55/rigid2d"
	"github.com/yea55/rigid2d/body"
)

func main() {
	world := rigid2d.NewWorld(rigid2d.DefaultConfig())
	world.AddForceLaw(rigid2d.GravityLaw{Gravity: mgl64.Vec2{0, -9.81}})

	world.Events.Subscribe(rigid2d.COLLISION, func(event rigid2d.Event) {
		e := event.(rigid2d.CollisionEvent)
		fmt.Printf("t=%.3f impact %s/%s impulse=%.3f\n",
			world.GetTime(), e.BodyA.Name, e.BodyB.Name, e.Impulse)
	})

	floor, err := body.NewBox("floor", 20, 1, 0, body.BodyTypeStatic)
	if err != nil {
		log.Fatal(err)
	}
	floor.Transform = body.NewTransform(mgl64.Vec2{0, -0.5}, 0)

	crate, err := body.NewBox("crate", 1, 1, 1, body.BodyTypeDynamic)
	if err != nil {
		log.Fatal(err)
	}
	crate.Transform = body.NewTransform(mgl64.Vec2{-1, 2}, 0.3)
	crate.Material.Elasticity = 0.2

	ball, err := body.NewBall("ball", 0.5, 1, body.BodyTypeDynamic)
	if err != nil {
		log.Fatal(err)
	}
	ball.Transform = body.NewTransform(mgl64.Vec2{1.5, 3}, 0)
	ball.Material.Elasticity = 0.6

	for _, rb := range []*body.RigidBody{floor, crate, ball} {
		if err := world.AddBody(rb); err != nil {
			log.Fatal(err)
		}
	}

	for i := 0; i < 300; i++ {
		if err := world.Advance(0.01); err != nil {
			log.Fatalf("step failed at t=%.3f: %v", world.GetTime(), err)
		}
	}

	for _, rb := range []*body.RigidBody{crate, ball} {
		fmt.Printf("%s: pos=(%.3f, %.3f) angle=%.3f v=(%.3f, %.3f)\n",
			rb.Name,
			rb.Transform.Position.X(), rb.Transform.Position.Y(),
			rb.Transform.Angle,
			rb.Velocity.X(), rb.Velocity.Y())
	}
}
