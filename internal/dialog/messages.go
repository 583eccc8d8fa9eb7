package dialog

import (
	"fmt"
	"strings"
)

const (
	msgOpening        = "Cześć! Jestem twoim korepetytorem matematyki. Jak masz na imię?"
	msgAskName        = "Jak masz na imię?"
	msgAskLevelFormat = "Miło cię poznać, %s! W której klasie jesteś? Mogę pomóc z materiałem od 4 klasy podstawówki do matury."
	msgLevelUnknown   = "Nie rozpoznałem poziomu. Powiedz mi, czy jesteś w podstawówce (klasa 4-8), liceum, czy przygotowujesz się do matury?"
	msgAskTopic       = "Świetnie! Z czego potrzebujesz pomocy? Mogę pomóc z: równaniami, funkcjami, geometrią, ułamkami lub procentami."
	msgTopicUnknown   = "Możemy zająć się: równaniami, funkcjami, geometrią, ułamkami lub procentami. Co cię interesuje?"
	msgTopicChosen    = "Dobrze, zajmiemy się tematem: %s. Oto zadanie:\n\n%s"
	msgTheoryChosen   = "Dobrze, zajmiemy się tematem: %s.\n\n%s\n\nPowiedz „dalej”, a dam ci zadanie."
	msgNextProblem    = "Oto kolejne zadanie:\n%s"
	msgBackToTopics   = "Ok! Z czego jeszcze mogę ci pomóc? (równania, funkcje, geometria, ułamki, procenty)"
	msgCorrect        = "Świetnie! Dobra odpowiedź! 🎉"
	msgAskAnother     = "Czy chcesz kolejne zadanie? (tak/nie)"
	msgWrongFormat    = "Hmm, spróbuj jeszcze raz. Wskazówka: %s"
	msgExhausted      = "Gratulacje! To były wszystkie zadania z tematu: %s. Powiedz „tak”, aby zacząć je od nowa, albo „nie”, aby wybrać inny temat."
	msgTheoryMidQuiz  = "%s\n\nPowiedz „dalej”, aby wrócić do zadania."
	msgTheoryAgain    = "%s\n\nPowiedz „dalej”, a dam ci zadanie."
	msgPractice       = "Teraz przejdźmy do zadania praktycznego. %s"
	msgResume         = "Wróćmy do zadania:\n\n%s"
	msgFarewellTail   = "Powodzenia w nauce matematyki!"
)

// farewellMessage builds the goodbye, naming the learner and the number
// of correct answers when there are any.
func farewellMessage(name string, correct int) string {
	var b strings.Builder
	b.WriteString("Do zobaczenia")
	if name != "" {
		b.WriteString(", ")
		b.WriteString(name)
	}
	b.WriteString("! ")
	if correct > 0 {
		fmt.Fprintf(&b, "Udało ci się poprawnie rozwiązać %d %s. ", correct, problemsNoun(correct))
	}
	b.WriteString(msgFarewellTail)
	return b.String()
}

// problemsNoun returns the Polish form of "zadanie" agreeing with n.
func problemsNoun(n int) string {
	if n == 1 {
		return "zadanie"
	}
	lastTwo := n % 100
	last := n % 10
	if last >= 2 && last <= 4 && (lastTwo < 12 || lastTwo > 14) {
		return "zadania"
	}
	return "zadań"
}
