package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// supported languages; the first entry is the fallback.
var supported = []language.Tag{
	language.English,
	language.Spanish,
}

type entry struct {
	key string
	msg string
}

var english = []entry{
	{KeyInvalidForm, "The form is incomplete. Please fill in the required values and try again."},
	{KeyNotConnected, "You are not connected to Trello. Run `/trello connect` first."},
	{KeyTrelloError, "Something went wrong talking to Trello. Please try again later."},
	{KeyBoardNotFound, "Board with the name \"%s\" was not found."},
	{KeyDescription, "Subscription to board \"%[2]s\" for channel \"%[1]s\""},
	{KeyListHeader, "Total subscriptions: %d"},
	{KeyListItem, "* ID: %s - Description: %s"},
	{KeyCardNotification, "Board \"%[2]s\": card \"%[1]s\" was updated."},
}

var spanish = []entry{
	{KeyInvalidForm, "El formulario está incompleto. Completa los valores requeridos e inténtalo de nuevo."},
	{KeyNotConnected, "No estás conectado a Trello. Ejecuta `/trello connect` primero."},
	{KeyTrelloError, "Algo salió mal al comunicarse con Trello. Inténtalo de nuevo más tarde."},
	{KeyBoardNotFound, "No se encontró el tablero con el nombre \"%s\"."},
	{KeyDescription, "Suscripción al tablero \"%[2]s\" para el canal \"%[1]s\""},
	{KeyListHeader, "Total de suscripciones: %d"},
	{KeyListItem, "* ID: %s - Descripción: %s"},
	{KeyCardNotification, "Tablero \"%[2]s\": la tarjeta \"%[1]s\" fue actualizada."},
}

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, e := range english {
		_ = b.SetString(language.English, e.key, e.msg)
	}
	for _, e := range spanish {
		_ = b.SetString(language.Spanish, e.key, e.msg)
	}
	return b
}
