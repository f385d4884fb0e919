// Demo: composes the sound/health player from a YAML blueprint and pokes it.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/entco/entco/internal/injector"
	"github.com/entco/entco/pkg/blueprint"
	"github.com/entco/entco/pkg/enco"
	"github.com/entco/entco/pkg/observability/log"
)

const playerBlueprint = `
types:
  player:
    components:
      - name: playssoundeffects
      - name: hashealthpoints
        named: {maxhp: 10}
`

func main() {
	log.New(log.LevelDebug)
	logger := injector.ProvideLogger()

	reg := blueprint.NewRegistry()
	if err := reg.Register(playsSoundEffects()); err != nil {
		fatal(logger, err)
	}
	if err := reg.Register(hasHealthPoints()); err != nil {
		fatal(logger, err)
	}

	cfg, err := blueprint.LoadYAML(strings.NewReader(playerBlueprint))
	if err != nil {
		fatal(logger, err)
	}
	types, err := cfg.Build(reg, logger)
	if err != nil {
		fatal(logger, err)
	}

	player, err := types["player"].New()
	if err != nil {
		fatal(logger, err)
	}

	fmt.Println("hp:", player.Int("hp"))
	if _, err = player.Call("takedamage", 4); err != nil {
		fatal(logger, err)
	}
	fmt.Println("hp:", player.Int("hp"))
	if _, err = player.Call("heal"); err != nil {
		fatal(logger, err)
	}
	fmt.Println("hp:", player.Int("hp"))
}

func fatal(logger log.Log, err error) {
	logger.Error("demo failed", log.Error(err))
	os.Exit(1)
}

func playsSoundEffects() *enco.Component {
	return enco.NewComponent("playssoundeffects").
		Method("jump", func(e *enco.Entity, args ...any) (any, error) {
			fmt.Println("Playing jump sound")
			return nil, nil
		}).
		Method("takedamage", func(e *enco.Entity, args ...any) (any, error) {
			fmt.Println("Playing hurt sound")
			return nil, nil
		})
}

func hasHealthPoints() *enco.Component {
	return enco.NewComponent("hashealthpoints").
		Init(func(e *enco.Entity, args enco.Args) error {
			maxhp, ok := args.Get("maxhp")
			if !ok {
				return fmt.Errorf("hashealthpoints: maxhp argument required")
			}
			e.Set("maxhp", maxhp)
			e.Set("hp", maxhp)
			return nil
		}).
		Method("heal", func(e *enco.Entity, args ...any) (any, error) {
			hp, _ := e.Get("maxhp")
			e.Set("hp", hp)
			return nil, nil
		}).
		Method("takedamage", func(e *enco.Entity, args ...any) (any, error) {
			dmg := 0
			if len(args) > 0 {
				if d, ok := args[0].(int); ok {
					dmg = d
				}
			}
			e.Set("hp", e.Int("hp")-dmg)
			return nil, nil
		})
}
