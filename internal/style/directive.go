package style

// directives are sent to the generative fallback only, never shown to
// students.
var directives = map[Style]string{
	Concis: `Style CONCIS :
- Phrases courtes, une consigne par phrase.
- Aucune mise en contexte, aucun mot superflu.
- Verbes à l'impératif (Trace, Calcule, Place).`,

	AcademiqueClassique: `Style ACADÉMIQUE CLASSIQUE :
- Formulation de manuel scolaire, neutre et précise.
- Vocabulaire mathématique exact du programme.
- Consignes numérotées si l'exercice comporte plusieurs questions.`,

	AcademiqueFormel: `Style ACADÉMIQUE FORMEL :
- Registre soutenu, notations rigoureuses.
- Introduire les objets ("Soit M le point de coordonnées...").
- Aucune familiarité, aucun contexte narratif.`,

	Narratif: `Style NARRATIF :
- Courte mise en situation concrète (un personnage, un lieu).
- Les données mathématiques restent explicites et exactes.
- La question finale est clairement séparée du récit.`,

	Guide: `Style GUIDÉ :
- Accompagner l'élève avec des indications de méthode.
- Rappeler la propriété utile sans donner le résultat.
- Terminer par la question à résoudre.`,

	Defi: `Style DÉFI :
- Présenter l'exercice comme un défi à relever.
- Ton motivant, sans exagération.
- Les données restent complètes et exactes.`,

	Oral: `Style ORAL :
- Formulation comme lue à voix haute par l'enseignant.
- Phrases simples, tutoiement.
- Pas de symboles difficiles à prononcer.`,

	PasAPas: `Style PAS À PAS :
- Découper la tâche en étapes numérotées.
- Chaque étape est une action vérifiable.
- La dernière étape conduit à la réponse sans la donner.`,

	Inductif: `Style INDUCTIF :
- Partir d'une observation ou d'un cas particulier.
- Amener l'élève à formuler lui-même la règle.
- Ne jamais énoncer la conclusion attendue.`,

	QuestionReponse: `Style QUESTION-RÉPONSE :
- Une suite de questions courtes et enchaînées.
- Chaque question appelle une réponse brève.
- Ne fournir aucune réponse dans l'énoncé.`,
}

// Directive returns the instruction block for s, falling back to the
// classic academic directive for unknown styles.
func Directive(s Style) string {
	if d, ok := directives[s]; ok {
		return d
	}
	return directives[Default]
}
