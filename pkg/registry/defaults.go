package registry

import (
	"fmt"
	"time"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/behaviours"
	"github.com/aretw0/arbor/pkg/decorators"
	"github.com/aretw0/arbor/pkg/domain"
)

// Default returns a registry holding every stock leaf and decorator.
func Default() *Registry {
	r := NewRegistry()

	r.Register("success", Leaf, fixed(behaviours.NewSuccess))
	r.Register("failure", Leaf, fixed(behaviours.NewFailure))
	r.Register("running", Leaf, fixed(behaviours.NewRunning))
	r.Register("count", Leaf, buildCount)
	r.Register("status_queue", Leaf, buildStatusQueue)

	r.Register("passthrough", Decorator, plain(decorators.NewPassthrough))
	r.Register("inverter", Decorator, plain(decorators.NewInverter))
	r.Register("success_is_failure", Decorator, plain(decorators.NewSuccessIsFailure))
	r.Register("success_is_running", Decorator, plain(decorators.NewSuccessIsRunning))
	r.Register("running_is_success", Decorator, plain(decorators.NewRunningIsSuccess))
	r.Register("running_is_failure", Decorator, plain(decorators.NewRunningIsFailure))
	r.Register("failure_is_success", Decorator, plain(decorators.NewFailureIsSuccess))
	r.Register("failure_is_running", Decorator, plain(decorators.NewFailureIsRunning))
	r.Register("oneshot", Decorator, plain(decorators.NewOneshot))
	r.Register("condition", Decorator, buildCondition)
	r.Register("timeout", Decorator, buildTimeout)

	return r
}

// BehaviourOptions translates env into leaf options.
func (e Env) BehaviourOptions() []behaviour.Option {
	return []behaviour.Option{behaviour.WithLogger(e.Logger)}
}

// DecoratorOptions translates env and the node name into decorator options.
func (e Env) DecoratorOptions(name string) []decorators.Option {
	return []decorators.Option{
		decorators.WithName(name),
		decorators.WithLogger(e.Logger),
		decorators.WithClock(e.Clock),
	}
}

func noParams(spec Spec) error {
	return DecodeParams(spec.Params, &struct{}{})
}

func fixed(ctor func(string, ...behaviour.Option) *behaviours.Fixed) Factory {
	return func(env Env, spec Spec) (behaviour.Behaviour, error) {
		if err := noParams(spec); err != nil {
			return nil, err
		}
		return ctor(spec.Name, env.BehaviourOptions()...), nil
	}
}

func plain(ctor func(behaviour.Behaviour, ...decorators.Option) *decorators.Decorator) Factory {
	return func(env Env, spec Spec) (behaviour.Behaviour, error) {
		if err := noParams(spec); err != nil {
			return nil, err
		}
		return ctor(spec.Child, env.DecoratorOptions(spec.Name)...), nil
	}
}

func buildCount(env Env, spec Spec) (behaviour.Behaviour, error) {
	cfg := behaviours.DefaultCountConfig()
	if err := DecodeParams(spec.Params, &cfg); err != nil {
		return nil, err
	}
	return behaviours.NewCount(spec.Name, cfg, env.BehaviourOptions()...), nil
}

type statusQueueParams struct {
	Script     []domain.Status `mapstructure:"script"`
	Eventually *domain.Status  `mapstructure:"eventually"`
}

func buildStatusQueue(env Env, spec Spec) (behaviour.Behaviour, error) {
	var p statusQueueParams
	if err := DecodeParams(spec.Params, &p); err != nil {
		return nil, err
	}
	if len(p.Script) == 0 && p.Eventually == nil {
		return nil, fmt.Errorf("script or eventually is required: %w", domain.ErrInvalidDefinition)
	}
	return behaviours.NewStatusQueue(spec.Name, p.Script, p.Eventually, env.BehaviourOptions()...), nil
}

type conditionParams struct {
	Status *domain.Status `mapstructure:"status"`
}

func buildCondition(env Env, spec Spec) (behaviour.Behaviour, error) {
	var p conditionParams
	if err := DecodeParams(spec.Params, &p); err != nil {
		return nil, err
	}
	target := domain.StatusSuccess
	if p.Status != nil {
		target = *p.Status
	}
	return decorators.NewCondition(spec.Child, target, env.DecoratorOptions(spec.Name)...), nil
}

type timeoutParams struct {
	Duration time.Duration `mapstructure:"duration"`
}

func buildTimeout(env Env, spec Spec) (behaviour.Behaviour, error) {
	var p timeoutParams
	if err := DecodeParams(spec.Params, &p); err != nil {
		return nil, err
	}
	if p.Duration <= 0 {
		return nil, fmt.Errorf("timeout needs a positive duration, got %s: %w", p.Duration, domain.ErrInvalidDefinition)
	}
	return decorators.NewTimeout(spec.Child, p.Duration, env.DecoratorOptions(spec.Name)...), nil
}
