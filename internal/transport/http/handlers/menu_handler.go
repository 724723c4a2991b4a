package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type platillo struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Precio      string `json:"precio"`
}

type categoriaMenu struct {
	Categoria string     `json:"categoria"`
	Platillos []platillo `json:"platillos"`
}

// La carta pública es contenido editorial: cambia con despliegues, no con
// datos, por eso vive en el binario y no en la base.
var cartaPublica = []categoriaMenu{
	{
		Categoria: "Entradas",
		Platillos: []platillo{
			{Nombre: "Ceviche Norteño", Descripcion: "Pescado del día, leche de tigre norteña, camote y choclo", Precio: "45.00"},
			{Nombre: "Jalea Mixta", Descripcion: "Mariscos y pescado fritos con yuca y salsa criolla", Precio: "60.00"},
		},
	},
	{
		Categoria: "Platos de fondo",
		Platillos: []platillo{
			{Nombre: "Lomo Saltado", Descripcion: "Lomo fino salteado al wok con papas fritas y arroz", Precio: "55.00"},
			{Nombre: "Arroz con Pato", Descripcion: "Arroz al culantro con pato criollo y sarsa", Precio: "48.00"},
			{Nombre: "Cabrito a la Norteña", Descripcion: "Cabrito macerado en chicha de jora con frejoles", Precio: "52.00"},
			{Nombre: "Ají de Gallina", Descripcion: "Pechuga deshilachada en crema de ají, arroz blanco", Precio: "38.00"},
		},
	},
	{
		Categoria: "Bebidas",
		Platillos: []platillo{
			{Nombre: "Chicha morada", Descripcion: "Jarra de maíz morado con fruta y especias", Precio: "12.00"},
			{Nombre: "Limonada fresca", Descripcion: "Jarra de limón con hierbabuena", Precio: "10.00"},
		},
	},
	{
		Categoria: "Postres",
		Platillos: []platillo{
			{Nombre: "Suspiro a la limeña", Descripcion: "Manjar blanco con merengue al oporto", Precio: "14.00"},
			{Nombre: "Picarones", Descripcion: "Buñuelos de zapallo con miel de chancaca", Precio: "12.00"},
		},
	},
}

// Menu es público: la carta que ve el comensal en la página.
func Menu(c *gin.Context) {
	c.JSON(http.StatusOK, cartaPublica)
}
