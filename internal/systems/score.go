package systems

// ScoreAccrual adds distance-based points while running.
type ScoreAccrual struct {
	env *Env
}

// NewScoreAccrual creates the score system.
func NewScoreAccrual(env *Env) *ScoreAccrual {
	return &ScoreAccrual{env: env}
}

func (s *ScoreAccrual) Run(ctx Context) Context {
	if !ctx.Running() {
		return ctx
	}
	p, ok := s.env.player()
	if !ok || p.Score == nil {
		return ctx
	}
	p.Score.Value += p.Locomotion.VelocityX / 100 * ctx.Dt
	return ctx
}
