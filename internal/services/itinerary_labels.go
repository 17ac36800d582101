package services

import "imperialvip/internal/domain"

// ItineraryLabels holds the captions of the itinerary document and the
// confirmation e-mail. Every language fills the same fields.
type ItineraryLabels struct {
	ArrivalInfo   string
	ReturnInfo    string
	FullName      string
	Phone         string
	Email         string
	PickupPoint   string
	DropoffPoint  string
	ArrivalDate   string
	ArrivalFlight string
	Airline       string
	HotelName     string
	Passengers    string
	VehicleType   string
	Price         string
	Adults        string
	Children      string
	ChildSeats    string
	SpecialNote   string
	ReturnDate    string
	ReturnFlight  string
	PickupTime    string
}

var itineraryLabels = map[string]ItineraryLabels{
	domain.LangTR: {
		ArrivalInfo:   "Geliş Bilgileri",
		ReturnInfo:    "Dönüş Bilgileri",
		FullName:      "Adı Soyadı",
		Phone:         "Telefon",
		Email:         "E-posta",
		PickupPoint:   "Alış Noktası",
		DropoffPoint:  "Varış Noktası",
		ArrivalDate:   "Geliş Tarihi",
		ArrivalFlight: "Geliş Uçuş Numarası",
		Airline:       "Havayolu Şirketi",
		HotelName:     "Otel Adı",
		Passengers:    "Yolcular",
		VehicleType:   "Araç Türü",
		Price:         "Fiyat",
		Adults:        "Yetişkin Sayısı",
		Children:      "Çocuk Sayısı",
		ChildSeats:    "Çocuk Koltuğu Sayısı",
		SpecialNote:   "Özel Not",
		ReturnDate:    "Dönüş Tarihi",
		ReturnFlight:  "Dönüş Uçuş Numarası",
		PickupTime:    "Araç Alış Saati",
	},
	domain.LangEN: {
		ArrivalInfo:   "Arrival Information",
		ReturnInfo:    "Return Information",
		FullName:      "Full Name",
		Phone:         "Phone",
		Email:         "Email",
		PickupPoint:   "Pick-up Point",
		DropoffPoint:  "Drop-off Point",
		ArrivalDate:   "Arrival Date",
		ArrivalFlight: "Arrival Flight Number",
		Airline:       "Airline",
		HotelName:     "Hotel Name",
		Passengers:    "Passengers",
		VehicleType:   "Vehicle Type",
		Price:         "Price",
		Adults:        "Number of Adults",
		Children:      "Number of Children",
		ChildSeats:    "Child Seats",
		SpecialNote:   "Special Note",
		ReturnDate:    "Return Date",
		ReturnFlight:  "Return Flight Number",
		PickupTime:    "Pick-up Time",
	},
	domain.LangDE: {
		ArrivalInfo:   "Ankunftsinformationen",
		ReturnInfo:    "Rückreiseinformationen",
		FullName:      "Vollständiger Name",
		Phone:         "Telefon",
		Email:         "E-Mail",
		PickupPoint:   "Abholort",
		DropoffPoint:  "Zielort",
		ArrivalDate:   "Ankunftsdatum",
		ArrivalFlight: "Ankunftsflugnummer",
		Airline:       "Fluggesellschaft",
		HotelName:     "Hotelname",
		Passengers:    "Passagiere",
		VehicleType:   "Fahrzeugtyp",
		Price:         "Preis",
		Adults:        "Anzahl Erwachsene",
		Children:      "Anzahl Kinder",
		ChildSeats:    "Kindersitze",
		SpecialNote:   "Besondere Hinweise",
		ReturnDate:    "Rückreisedatum",
		ReturnFlight:  "Rückflugnummer",
		PickupTime:    "Abholzeit",
	},
	domain.LangRU: {
		ArrivalInfo:   "Информация о прибытии",
		ReturnInfo:    "Информация об обратном трансфере",
		FullName:      "ФИО",
		Phone:         "Телефон",
		Email:         "Эл. почта",
		PickupPoint:   "Место посадки",
		DropoffPoint:  "Место высадки",
		ArrivalDate:   "Дата прибытия",
		ArrivalFlight: "Номер рейса прибытия",
		Airline:       "Авиакомпания",
		HotelName:     "Название отеля",
		Passengers:    "Пассажиры",
		VehicleType:   "Тип автомобиля",
		Price:         "Цена",
		Adults:        "Взрослых",
		Children:      "Детей",
		ChildSeats:    "Детских кресел",
		SpecialNote:   "Особые пожелания",
		ReturnDate:    "Дата обратного трансфера",
		ReturnFlight:  "Номер обратного рейса",
		PickupTime:    "Время посадки",
	},
}

// LabelsFor returns the captions for lang, Turkish when unsupported.
func LabelsFor(lang string) ItineraryLabels {
	return itineraryLabels[domain.NormalizeLang(lang)]
}
