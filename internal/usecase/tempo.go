package usecase

import "time"

// saoPaulo é o fuso de referência do restaurante; os timestamps de pedido
// são gravados em horário local do Brasil.
var saoPaulo = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}()

func agoraBrasil() time.Time { return time.Now().In(saoPaulo) }
