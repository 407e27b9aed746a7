package usecases

import (
	"context"
)

type LivenessUsecase struct {
	executorFactory ExecutorFactory
}

func (u Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{executorFactory: u.ExecutorFactory}
}

func (uc LivenessUsecase) Liveness(ctx context.Context) error {
	var one int
	return uc.executorFactory.Executor().QueryRow(ctx, "SELECT 1").Scan(&one)
}
