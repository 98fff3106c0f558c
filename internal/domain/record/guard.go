package record

import "context"

// OpenVisitFinder responde se algum atendimento aberto aponta para o registro.
type OpenVisitFinder interface {
	HasOpenVisit(ctx context.Context, kind Kind, id uint) (bool, error)
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allowed() Decision {
	return Decision{Allowed: true}
}

func blocked(reason string) Decision {
	return Decision{Reason: reason}
}

// Guard impede inativar registros ainda usados por atendimentos abertos.
// Não altera nada: quem chama faz a troca de status na mesma transação.
type Guard struct {
	visits OpenVisitFinder
}

func NewGuard(visits OpenVisitFinder) *Guard {
	return &Guard{visits: visits}
}

func (g *Guard) CanDeactivate(ctx context.Context, kind Kind, id uint) (Decision, error) {
	if _, ok := kind.VisitColumn(); !ok {
		return allowed(), nil
	}

	open, err := g.visits.HasOpenVisit(ctx, kind, id)
	if err != nil {
		return Decision{}, err
	}
	if open {
		return blocked("Este registro de " + kind.Label() + " possui atendimentos pendentes, impossível inativar."), nil
	}

	return allowed(), nil
}
